// Package command implements the textual request interface of the
// scheduler: the interactive prompt loop and the line parser for
// `Start_Alarm(id): seconds message` and `Change_Alarm(id): seconds message`
// requests.
//
// It sits at the boundary: the scheduler core only ever sees requests that
// parsed and validated here.
package command
