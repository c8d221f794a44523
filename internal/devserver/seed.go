package devserver

import "context"

// SeedResult reports the demo accounts created by Seed so the CLI can print
// usable credentials.
type SeedResult struct {
	AdminEmail  string `json:"adminEmail"`
	MemberEmail string `json:"memberEmail"`
	Password    string `json:"password"`
	TaskIDs     []string `json:"taskIds"`
}

// Seed populates a fresh database with two accounts and a couple of tasks
// with short threads. Calling it on a non-empty database is an error from
// the unique email constraint, which is fine: seeding is a bootstrap step.
func Seed(ctx context.Context, st *Store) (SeedResult, error) {
	res := SeedResult{
		AdminEmail:  "admin@example.test",
		MemberEmail: "me@example.test",
		Password:    "password",
	}

	admin, err := st.CreateUser(ctx, res.AdminEmail, res.Password, "Avery Admin", "admin")
	if err != nil {
		return res, err
	}
	member, err := st.CreateUser(ctx, res.MemberEmail, res.Password, "Morgan Member", "member")
	if err != nil {
		return res, err
	}

	tasks := []struct{ title, status string }{
		{"Ship the onboarding flow", "in-progress"},
		{"Fix avatar upload on Safari", "open"},
	}
	for _, tt := range tasks {
		task, err := st.CreateTask(ctx, tt.title, tt.status)
		if err != nil {
			return res, err
		}
		res.TaskIDs = append(res.TaskIDs, task.ID)

		if _, err := st.InsertComment(ctx, task.ID, admin, "Kicking this off — thread for questions here."); err != nil {
			return res, err
		}
		if _, err := st.InsertComment(ctx, task.ID, member, "On it. First findings tomorrow."); err != nil {
			return res, err
		}
	}
	return res, nil
}
