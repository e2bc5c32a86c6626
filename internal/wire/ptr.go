package wire

// String returns a pointer to s
func String(s string) *string { return &s }

// Float returns a pointer to f
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i
func Int(i int) *int { return &i }
