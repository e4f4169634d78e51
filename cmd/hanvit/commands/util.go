package commands

import (
	"fmt"
	"strconv"

	"github.com/educreatorschool-design/hanvitlms/internal/config"
	"github.com/educreatorschool-design/hanvitlms/internal/persist"
	"github.com/educreatorschool-design/hanvitlms/internal/store"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// openStore loads the configuration, creates the state store and seeds it
// from the local persisted snapshot when one exists. The returned
// FileStore is not yet attached as a subscriber; commands that mutate
// state attach it first so their changes persist.
func openStore() (*config.Config, *store.Store, *persist.FileStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.New()
	files := persist.New(cfg.DataDir)

	state, err := files.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if state != nil {
		st.LoadPersisted(state)
	}

	return cfg, st, files, nil
}

// resolveWeek looks up a course and one of its syllabus weeks from CLI
// arguments. Returns the course, the week module and its syllabus index.
func resolveWeek(st *store.Store, courseID, weekArg string) (*model.Course, *model.WeeklyModule, int, error) {
	course := st.CourseByID(courseID)
	if course == nil {
		return nil, nil, 0, fmt.Errorf("course %q not found", courseID)
	}

	week, err := strconv.Atoi(weekArg)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("invalid week number %q", weekArg)
	}

	for i := range course.Syllabus {
		if course.Syllabus[i].Week == week {
			return course, &course.Syllabus[i], i, nil
		}
	}
	return nil, nil, 0, fmt.Errorf("course %q has no week %d in its syllabus", course.Title, week)
}

// defaultAdmin is the seed administrator account. At most one ADMIN
// exists; Seed checks before inserting.
func defaultAdmin() model.User {
	return model.User{
		ID:    model.NewID(),
		Name:  "Administrator",
		Email: "admin@hanvit.local",
		Role:  model.RoleAdmin,
	}
}
