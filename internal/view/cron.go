package view

import (
	"time"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseCron parses a five-field cron expression or a descriptor like @daily
func ParseCron(expr string) (cron.Schedule, error) {
	return cronParser.Parse(expr)
}

// NextRun returns the next activation of expr after from
func NextRun(expr string, from time.Time) (time.Time, error) {
	sched, err := ParseCron(expr)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}
