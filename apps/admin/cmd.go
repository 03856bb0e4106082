package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/deadline"
	"github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/core/schedule"
	"github.com/trezcool/classtrack/core/upload"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp        = errors.New("help provided")
	errInvalidFile = errors.New("file rejected")
	errAborted     = errors.New("submission aborted")
	errNoConfirm   = errors.New("not a terminal: pass -yes to confirm the submission")
)

type commandLine struct {
	conf   *core.Config
	clock  core.Clock
	sched  schedule.Scheduler
	portal *portal.Portal

	in        io.Reader
	inFd      int
	out       io.Writer
	interrupt <-chan os.Signal
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  urgency -due RFC3339 [-watch]                     - show how urgent a deadline is")
	fmt.Fprintln(cli.out, "  checkfile -file PATH [-types .pdf,.doc] [-max BYTES] - check a file against upload rules")
	fmt.Fprintln(cli.out, "  submit -assignment ID -file PATH [-yes]           - submit a file for an assignment")
	fmt.Fprintln(cli.out, "  export -out PATH [-course ID] [-search TEXT]      - export grades as a spreadsheet")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	urgencyCmd := flag.NewFlagSet("urgency", flag.ContinueOnError)
	urgencyDue := urgencyCmd.String("due", "", "The deadline, eg. 2025-01-18T23:59:00Z.")
	urgencyWatch := urgencyCmd.Bool("watch", false, "Keep printing the deadline as it changes, until it is overdue.")

	checkFileCmd := flag.NewFlagSet("checkfile", flag.ContinueOnError)
	checkFilePath := checkFileCmd.String("file", "", "The file to check.")
	checkFileTypes := checkFileCmd.String("types", "", "Comma separated accepted extensions. Any type if empty.")
	checkFileMax := checkFileCmd.Int64("max", 0, "The max size in bytes. No limit if 0.")

	submitCmd := flag.NewFlagSet("submit", flag.ContinueOnError)
	submitAssignment := submitCmd.Int("assignment", 0, "The assignment ID.")
	submitPath := submitCmd.String("file", "", "The file to submit.")
	submitYes := submitCmd.Bool("yes", false, "Do not ask for confirmation.")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportOut := exportCmd.String("out", "", "The spreadsheet to write, eg. grades.xlsx.")
	exportCourse := exportCmd.String("course", "", "Only export this course.")
	exportSearch := exportCmd.String("search", "", "Only export matching assignment titles or course names.")

	for _, fs := range []*flag.FlagSet{urgencyCmd, checkFileCmd, submitCmd, exportCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "urgency":
		if err := urgencyCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *urgencyDue == "" {
			urgencyCmd.Usage()
			return errHelp
		}
		due, err := time.Parse(time.RFC3339, *urgencyDue)
		if err != nil {
			return fmt.Errorf("parsing -due: %w", err)
		}
		return cli.urgency(due, *urgencyWatch)
	case "checkfile":
		if err := checkFileCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkFilePath == "" {
			checkFileCmd.Usage()
			return errHelp
		}
		return cli.checkFile(*checkFilePath, splitTypes(*checkFileTypes), *checkFileMax)
	case "submit":
		if err := submitCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *submitAssignment <= 0 || *submitPath == "" {
			submitCmd.Usage()
			return errHelp
		}
		return cli.submit(*submitAssignment, *submitPath, *submitYes)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(*exportOut, portal.GradesQuery{Course: *exportCourse, Search: *exportSearch})
	default:
		cli.printUsage()
		return errHelp
	}
}

func splitTypes(s string) []string {
	var types []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func statFile(path string) (upload.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return upload.File{}, err
	}
	if info.IsDir() {
		return upload.File{}, fmt.Errorf("%s is a directory", path)
	}
	return upload.File{Name: info.Name(), Size: info.Size()}, nil
}

// printFileErrors prints the reasons a file was rejected, one per line.
func (cli *commandLine) printFileErrors(err error) error {
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, fld := range verr.Fields {
		fmt.Fprintf(cli.out, "  - %s\n", fld.Error)
	}
	return errInvalidFile
}

func (cli *commandLine) printReading(r deadline.Reading) {
	fmt.Fprintf(cli.out, "%-8s %s (due %s)\n", r.Level, r.TimeLeft, r.Due.Format(time.RFC1123))
}

func (cli *commandLine) urgency(due time.Time, watch bool) error {
	if !watch {
		cli.printReading(deadline.Read(due, cli.clock.Now()))
		return nil
	}

	overdue := make(chan struct{})
	countdown := deadline.NewCountdown(due, cli.clock, cli.sched, cli.conf.Deadline.PollInterval)
	defer countdown.Stop()

	r := countdown.Start(func(r deadline.Reading) {
		cli.printReading(r)
		if r.Level == deadline.LevelOverdue {
			close(overdue)
		}
	})
	cli.printReading(r)
	if r.Level == deadline.LevelOverdue {
		return nil
	}

	select {
	case <-overdue:
	case <-cli.interrupt:
	}
	return nil
}

func (cli *commandLine) checkFile(path string, types []string, max int64) error {
	f, err := statFile(path)
	if err != nil {
		return err
	}
	if err = upload.Validate(f, upload.Rules{AllowedTypes: types, MaxSize: max}); err != nil {
		fmt.Fprintf(cli.out, "%s (%s MB) is rejected:\n", f.Name, f.SizeMB())
		return cli.printFileErrors(err)
	}
	fmt.Fprintf(cli.out, "%s (%s MB) is accepted\n", f.Name, f.SizeMB())
	return nil
}

// confirm asks the question on the terminal. Anything but yes aborts.
func (cli *commandLine) confirm(question string) (bool, error) {
	if !isTerminalFunc(cli.inFd) {
		return false, errNoConfirm
	}
	fmt.Fprintf(cli.out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (cli *commandLine) submit(assignmentID int, path string, yes bool) error {
	ctx := context.Background()

	detail, err := cli.portal.AssignmentDetail(ctx, assignmentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s - %s\n", detail.Assignment.Title, detail.Assignment.CourseName)
	cli.printReading(detail.Deadline)
	if !detail.CanSubmit {
		return errors.New(detail.LockReason)
	}

	f, err := statFile(path)
	if err != nil {
		return err
	}
	if _, err = cli.portal.StageFile(ctx, assignmentID, f); err != nil {
		fmt.Fprintf(cli.out, "%s (%s MB) is rejected:\n", f.Name, f.SizeMB())
		return cli.printFileErrors(err)
	}

	prompt, err := cli.portal.RequestUpload(ctx, assignmentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (%s MB)\n", prompt.FileName, prompt.SizeMB)
	if !yes {
		ok, err := cli.confirm(prompt.Message)
		if err != nil || !ok {
			if _, cerr := cli.portal.CancelUpload(ctx, assignmentID); cerr != nil {
				return cerr
			}
			if err != nil {
				return err
			}
			return errAborted
		}
	}

	snap, done, err := cli.portal.StartUpload(ctx, assignmentID)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(cli.conf.Upload.ProgressTick)
	defer ticker.Stop()

	lastProgress := -1
	for {
		if snap.Progress != lastProgress {
			fmt.Fprintf(cli.out, "Uploading... %d%%\n", snap.Progress)
			lastProgress = snap.Progress
		}
		select {
		case err := <-done:
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Uploading... 100%%\nSubmitted %s\n", prompt.FileName)
			return nil
		case <-ticker.C:
			if snap, err = cli.portal.UploadStatus(ctx, assignmentID); err != nil {
				return err
			}
		}
	}
}

func (cli *commandLine) export(path string, q portal.GradesQuery) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err = cli.portal.ExportGrades(context.Background(), q, f); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Grades exported to %s\n", path)
	return nil
}
