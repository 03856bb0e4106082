package inmemdb

import (
	"encoding/json"
	"io/fs"
	"path"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/core/submission"
)

// fixture files, relative to the fixtures dir
const (
	assignmentsFile   = "assignments.json"
	submissionsFile   = "submissions.json"
	studentsFile      = "students.json"
	notificationsFile = "notifications.json"
)

type (
	assignmentTable struct {
		mutex sync.RWMutex
		rows  []assignment.Assignment
	}

	submissionTable struct {
		mutex sync.RWMutex
		rows  []submission.Submission
	}

	studentTable struct {
		mutex sync.RWMutex
		rows  []student.Student
	}

	notificationTable struct {
		mutex sync.RWMutex
		rows  []notification.Notification
	}

	// DB holds the in-memory collections. Rows keep insertion order.
	DB struct {
		latency      core.Latency
		assignment   *assignmentTable
		submission   *submissionTable
		student      *studentTable
		notification *notificationTable
	}

	Options struct {
		Latency core.Latency
		// Shift is added to every fixture timestamp.
		Shift time.Duration
	}
)

// NewDB returns a DB with empty collections.
func NewDB(latency core.Latency) *DB {
	return &DB{
		latency:      latency,
		assignment:   &assignmentTable{},
		submission:   &submissionTable{},
		student:      &studentTable{},
		notification: &notificationTable{},
	}
}

// Open returns a DB seeded from the JSON fixtures found in dir of fsys.
func Open(fsys fs.FS, dir string, opts Options) (*DB, error) {
	db := NewDB(opts.Latency)

	if err := load(fsys, path.Join(dir, assignmentsFile), &db.assignment.rows); err != nil {
		return nil, err
	}
	if err := load(fsys, path.Join(dir, submissionsFile), &db.submission.rows); err != nil {
		return nil, err
	}
	if err := load(fsys, path.Join(dir, studentsFile), &db.student.rows); err != nil {
		return nil, err
	}
	if err := load(fsys, path.Join(dir, notificationsFile), &db.notification.rows); err != nil {
		return nil, err
	}

	if opts.Shift != 0 {
		db.shift(opts.Shift)
	}
	return db, nil
}

// RebaseShift returns the shift that moves fixtures authored at anchor to now, to the minute.
func RebaseShift(anchor, now time.Time) time.Duration {
	return now.Truncate(time.Minute).Sub(anchor)
}

func load(fsys fs.FS, name string, dest interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	if err = json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	return nil
}

func (db *DB) shift(d time.Duration) {
	for i := range db.assignment.rows {
		db.assignment.rows[i].DueDate = db.assignment.rows[i].DueDate.Add(d)
	}
	for i := range db.submission.rows {
		sub := &db.submission.rows[i]
		sub.SubmittedAt = sub.SubmittedAt.Add(d)
		if sub.GradedAt.Valid {
			sub.GradedAt.Time = sub.GradedAt.Time.Add(d)
		}
	}
	for i := range db.notification.rows {
		db.notification.rows[i].Timestamp = db.notification.rows[i].Timestamp.Add(d)
	}
}
