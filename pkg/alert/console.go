package alert

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Console prints matched jobs to a terminal.
type Console struct {
	out io.Writer
}

// NewConsole creates a console notifier writing to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(_ context.Context, n *Notification) error {
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(c.out, "\n%s\n%s - %d NEW JOB MATCH(ES)\n%s\n", rule, n.Subject, len(n.Jobs), rule)
	for _, job := range n.Jobs {
		skills := "None"
		if len(job.MatchedSkills) > 0 {
			limit := len(job.MatchedSkills)
			if limit > 10 {
				limit = 10
			}
			skills = strings.Join(job.MatchedSkills[:limit], ", ")
		}

		fmt.Fprintf(c.out, `
Title: %s
Company: %s
Location: %s
Match Score: %.0f%%
Board: %s

Matched Skills: %s

URL: %s

%s
`, job.Title, job.Company, job.Location, job.MatchScore*100, job.Board, skills, job.URL, rule)
	}
	return nil
}
