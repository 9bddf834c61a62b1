package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gpacalc/internal/courseinput"
	"github.com/wonny/gpacalc/internal/session"
)

const prompt = "gpa> "

func newInteractiveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"repl", "i"},
		Short:   "Edit a course list line by line and calculate on demand",
		Long: `Start an interactive session.

Rows are referenced by their 1-based number or by a prefix of the course ID.
Type "help" for the command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initDeps(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			r := &repl{
				deps:    d,
				session: d.newSession(),
				out:     newPrinter(cmd.OutOrStdout()),
			}
			return r.run(bufio.NewScanner(cmd.InOrStdin()))
		},
	}
}

type repl struct {
	deps    *deps
	session *session.Session
	out     *printer
}

var errQuit = errors.New("quit")

func (r *repl) run(in *bufio.Scanner) error {
	r.out.Info(fmt.Sprintf("GPA calculator (%s). Type \"help\" for commands.", r.session.Scale().Name))

	for {
		r.out.printf("%s", prompt)
		if !in.Scan() {
			r.out.println()
			return in.Err()
		}

		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		err := r.dispatch(strings.ToLower(fields[0]), fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			r.report(err)
		}
	}
}

func (r *repl) dispatch(name string, args []string) error {
	switch name {
	case "add":
		return r.add(args)
	case "code":
		return r.withRef(args, "code N CODE", func(ref, v string) error {
			return r.session.UpdateCourseCode(ref, v)
		})
	case "score":
		return r.withRef(args, "score N SCORE", func(ref, v string) error {
			score, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("score %q is not a number", v)
			}
			return r.session.UpdateScore(ref, score)
		})
	case "units":
		return r.withRef(args, "units N UNITS", func(ref, v string) error {
			units, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("units %q must be a whole number", v)
			}
			return r.session.UpdateCredits(ref, units)
		})
	case "remove", "rm":
		if len(args) != 1 {
			return usageError("remove N")
		}
		if err := r.session.Remove(args[0]); err != nil {
			return err
		}
		r.out.Success("Course removed")
		return nil
	case "list", "ls":
		r.list()
		return nil
	case "calc":
		return r.calc()
	case "clear":
		r.session.Clear()
		r.out.Success("All courses removed")
		return nil
	case "scale":
		return r.scale(args)
	case "help", "?":
		r.help()
		return nil
	case "quit", "exit", "q":
		return errQuit
	}
	return fmt.Errorf("unknown command %q (type \"help\")", name)
}

func (r *repl) add(args []string) error {
	switch len(args) {
	case 0:
		e := r.session.Add()
		r.out.Success(fmt.Sprintf("Added row %d (%s)", r.session.Len(), shortID(e.ID)))
		return nil
	case 1:
		in, err := courseinput.ParseSpec(args[0])
		if err != nil {
			return err
		}
		return r.addCourse(in)
	case 3:
		in, err := courseinput.ParseSpec(strings.Join(args, ":"))
		if err != nil {
			return err
		}
		return r.addCourse(in)
	}
	return usageError("add [CODE SCORE UNITS]")
}

func (r *repl) addCourse(in courseinput.Input) error {
	e, err := r.session.AddCourse(in.Code, in.Score, in.Units)
	if err != nil {
		return err
	}
	r.out.Success(fmt.Sprintf("Added %s as row %d (%s)", e.CourseCode, r.session.Len(), shortID(e.ID)))
	return nil
}

func (r *repl) withRef(args []string, usage string, fn func(ref, value string) error) error {
	if len(args) != 2 {
		return usageError(usage)
	}
	if err := fn(args[0], args[1]); err != nil {
		return err
	}
	r.out.Success("Course updated")
	return nil
}

func (r *repl) list() {
	if r.session.Len() == 0 {
		r.out.Info("No courses yet. Use \"add\" to create one.")
		return
	}

	scale := r.session.Scale()
	r.out.Header(fmt.Sprintf("Courses (%s)", scale.Name))
	printCourses(r.out, scale, r.session.Entries())

	if res, visible := r.session.LastResult(); visible {
		r.out.Separator()
		printSummary(r.out, scale, res)
	}
}

func (r *repl) calc() error {
	res, err := r.session.Calculate()
	if err != nil {
		return err
	}

	r.out.Header(fmt.Sprintf("GPA Result (%s)", res.Scale))
	printSummary(r.out, r.session.Scale(), res)
	return nil
}

func (r *repl) scale(args []string) error {
	if len(args) == 0 {
		current := r.session.Scale().Name
		r.out.KeyValue("Active scale", current, 12)
		names := []string{}
		for _, s := range r.deps.availableScales() {
			names = append(names, s.Name)
		}
		r.out.KeyValue("Available", strings.Join(names, ", "), 12)
		return nil
	}
	if len(args) != 1 {
		return usageError("scale [NAME]")
	}

	scale, err := r.deps.findScale(args[0])
	if err != nil {
		return err
	}
	r.session.SetScale(scale)
	r.out.Success(fmt.Sprintf("Scale set to %s", scale.Name))
	return nil
}

func (r *repl) help() {
	r.out.Header("Commands")
	r.out.List([]string{
		"add                     add a blank row",
		"add CODE SCORE UNITS    add a complete course (or CODE:SCORE:UNITS)",
		"code N CODE             set the course code of row N",
		"score N SCORE           set the score of row N",
		"units N UNITS           set the units of row N",
		"remove N                remove row N",
		"list                    show all rows",
		"calc                    calculate the GPA",
		"clear                   remove every row",
		"scale [NAME]            show or switch the grading scale",
		"quit                    leave the session",
	})
	r.out.Info("N is a row number or a prefix of the course ID")
}

func (r *repl) report(err error) {
	if session.IsValidationError(err) {
		r.out.Warning(err.Error())
		return
	}
	r.out.Error(err.Error())
}

func usageError(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
