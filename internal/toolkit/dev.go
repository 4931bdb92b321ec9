// AngelaMos | 2026
// dev.go

package toolkit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/PaesslerAG/gval"
	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type CrontabRequest struct {
	Expression string `json:"expression"   validate:"omitempty,max=128"`
	Minute     string `json:"minute"       validate:"omitempty,max=64"`
	Hour       string `json:"hour"         validate:"omitempty,max=64"`
	DayOfMonth string `json:"day_of_month" validate:"omitempty,max=64"`
	Month      string `json:"month"        validate:"omitempty,max=64"`
	DayOfWeek  string `json:"day_of_week"  validate:"omitempty,max=64"`
	Count      int    `json:"count"        validate:"omitempty,min=1,max=50"`
	Timezone   string `json:"timezone"     validate:"omitempty,max=64"`
}

type CrontabResult struct {
	Expression string            `json:"expression"`
	Fields     map[string]string `json:"fields,omitempty"`
	Timezone   string            `json:"timezone"`
	NextRuns   []time.Time       `json:"next_runs"`
}

func CrontabGenerator() Widget {
	return crontabGenerator(time.Now)
}

func crontabGenerator(now func() time.Time) Widget {
	return Typed(func(_ context.Context, req CrontabRequest) (any, error) {
		expr := strings.TrimSpace(req.Expression)
		if expr == "" {
			expr = strings.Join([]string{
				fieldOr(req.Minute), fieldOr(req.Hour), fieldOr(req.DayOfMonth),
				fieldOr(req.Month), fieldOr(req.DayOfWeek),
			}, " ")
		}

		sched, err := cronParser.Parse(expr)
		if err != nil {
			return nil, badInput("invalid cron expression: %s", err.Error())
		}

		loc := time.UTC
		if req.Timezone != "" {
			loc, err = time.LoadLocation(req.Timezone)
			if err != nil {
				return nil, badInput("unknown timezone %q", req.Timezone)
			}
		}

		count := req.Count
		if count == 0 {
			count = 5
		}

		runs := make([]time.Time, 0, count)
		at := now().In(loc)
		for range count {
			at = sched.Next(at)
			if at.IsZero() {
				break
			}
			runs = append(runs, at)
		}

		return CrontabResult{
			Expression: expr,
			Fields:     cronFields(expr),
			Timezone:   loc.String(),
			NextRuns:   runs,
		}, nil
	})
}

func fieldOr(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "*"
	}
	return v
}

func cronFields(expr string) map[string]string {
	parts := strings.Fields(expr)
	names := []string{"minute", "hour", "day_of_month", "month", "day_of_week"}
	if len(parts) == 6 {
		names = append([]string{"second"}, names...)
	}
	if len(parts) != len(names) {
		return nil
	}

	fields := make(map[string]string, len(parts))
	for i, name := range names {
		fields[name] = parts[i]
	}
	return fields
}

var mathLanguage = gval.Full(
	gval.Constant("pi", math.Pi),
	gval.Constant("e", math.E),
	mathFunc("sqrt", math.Sqrt),
	mathFunc("cbrt", math.Cbrt),
	mathFunc("abs", math.Abs),
	mathFunc("ceil", math.Ceil),
	mathFunc("floor", math.Floor),
	mathFunc("round", math.Round),
	mathFunc("ln", math.Log),
	mathFunc("log10", math.Log10),
	mathFunc("log2", math.Log2),
	mathFunc("exp", math.Exp),
	mathFunc("sin", math.Sin),
	mathFunc("cos", math.Cos),
	mathFunc("tan", math.Tan),
	mathFunc("asin", math.Asin),
	mathFunc("acos", math.Acos),
	mathFunc("atan", math.Atan),
	gval.Function("pow", func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments")
		}
		x, ok1 := args[0].(float64)
		y, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("pow expects numbers")
		}
		return math.Pow(x, y), nil
	}),
)

func mathFunc(name string, fn func(float64) float64) gval.Language {
	return gval.Function(name, func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument", name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s expects a number", name)
		}
		return fn(x), nil
	})
}

type MathRequest struct {
	Expression string `json:"expression" validate:"required,max=1024"`
}

type MathResult struct {
	Expression string `json:"expression"`
	Result     any    `json:"result"`
}

func MathEvaluator() Widget {
	return Typed(func(_ context.Context, req MathRequest) (any, error) {
		value, err := mathLanguage.Evaluate(req.Expression, nil)
		if err != nil {
			return nil, badInput("could not evaluate expression: %s", err.Error())
		}

		switch v := value.(type) {
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, badInput("expression does not produce a finite number")
			}
			return MathResult{Expression: req.Expression, Result: v}, nil
		case bool:
			return MathResult{Expression: req.Expression, Result: v}, nil
		default:
			return nil, badInput("expression must produce a number or boolean")
		}
	})
}

type GitCommand struct {
	Section     string `json:"section"`
	Description string `json:"description"`
	Command     string `json:"command"`
}

var gitCommands = []GitCommand{
	{"Configuration", "Set the name attached to your commits", `git config --global user.name "[name]"`},
	{"Configuration", "Set the email attached to your commits", `git config --global user.email "[email]"`},
	{"Configuration", "Set the default branch name", "git config --global init.defaultBranch main"},
	{"Get started", "Create a git repository", "git init"},
	{"Get started", "Clone an existing repository", "git clone [url]"},
	{"Commit", "Stage every change", "git add ."},
	{"Commit", "Commit staged changes", `git commit -m "[message]"`},
	{"Commit", "Add forgotten changes to the last commit", "git commit --amend --no-edit"},
	{"Commit", "Undo the last commit and keep the changes", "git reset HEAD~1"},
	{"Commit", "Undo the last commit and drop the changes", "git reset --hard HEAD~1"},
	{"Branches", "List local branches", "git branch"},
	{"Branches", "Create and switch to a new branch", "git switch -c [branch]"},
	{"Branches", "Delete a merged branch", "git branch -d [branch]"},
	{"Branches", "Rename the current branch", "git branch -m [new-name]"},
	{"Branches", "Merge a branch into the current one", "git merge [branch]"},
	{"Branches", "Rebase the current branch onto another", "git rebase [branch]"},
	{"Remote", "Fetch and merge remote changes", "git pull"},
	{"Remote", "Push the current branch and set upstream", "git push -u origin [branch]"},
	{"Remote", "Show configured remotes", "git remote -v"},
	{"Inspect", "Show working tree status", "git status"},
	{"Inspect", "Show the commit history as a graph", "git log --oneline --graph --all"},
	{"Inspect", "Show unstaged changes", "git diff"},
	{"Inspect", "Show who changed each line of a file", "git blame [file]"},
	{"Stash", "Stash uncommitted changes", "git stash"},
	{"Stash", "Reapply the latest stash", "git stash pop"},
	{"Stash", "List stashes", "git stash list"},
	{"Recovery", "Show every position HEAD has been at", "git reflog"},
	{"Recovery", "Restore a file to its last committed state", "git restore [file]"},
	{"Recovery", "Apply a single commit from elsewhere", "git cherry-pick [commit]"},
}

type GitCheatsheetRequest struct {
	Query string `json:"query" validate:"max=128"`
}

func GitCheatsheet() Widget {
	return Typed(func(_ context.Context, req GitCheatsheetRequest) (any, error) {
		q := strings.ToLower(strings.TrimSpace(req.Query))
		if q == "" {
			return gitCommands, nil
		}

		matches := []GitCommand{}
		for _, c := range gitCommands {
			if strings.Contains(strings.ToLower(c.Description), q) ||
				strings.Contains(strings.ToLower(c.Command), q) ||
				strings.Contains(strings.ToLower(c.Section), q) {
				matches = append(matches, c)
			}
		}
		return matches, nil
	})
}
