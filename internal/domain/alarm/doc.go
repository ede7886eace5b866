// Package alarm contains core domain types for the alarm scheduler.
//
// It defines Request (a validated user request) and Alarm (a tracked timed
// alarm) with validation and Clone helpers to avoid leaking internal
// references. An Alarm is only allocated from a Request that already passed
// validation.
package alarm
