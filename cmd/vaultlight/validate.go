package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/vaultlight/internal/fancy"
	"github.com/atlanticdynamic/vaultlight/internal/vault"
)

var validateCmd = &cli.Command{
	Name:      "validate",
	Aliases:   []string{"lint"},
	Usage:     "Validate the structure of a vault without exporting it",
	ArgsUsage: "<vault-path>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "tree",
			Aliases: []string{"t"},
			Usage:   "Show a detailed tree view of the validation result",
		},
	},
	Suggest: true,
	Action:  validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("vault path required (usage: vaultlight validate <vault-path>)")
	}
	vaultPath := cmd.Args().Get(0)

	validator := vault.NewValidator(vault.WithLogger(slog.New(logHandler(cmd))))
	res := validator.Validate(vaultPath)

	if cmd.Bool("tree") {
		fmt.Println(renderResultTree(vaultPath, res))
	} else {
		fmt.Print(renderResultSummary(vaultPath, res))
	}

	if !res.Valid {
		return fmt.Errorf("vault validation failed with %d error(s)", len(res.Errors))
	}
	return nil
}

func renderResultSummary(vaultPath string, res *vault.Result) string {
	var summary strings.Builder

	status := fancy.ValidText("valid")
	if !res.Valid {
		status = fancy.ErrorText("invalid")
	}
	summary.WriteString(fmt.Sprintf("Vault %s is %s\n", vaultPath, status))
	summary.WriteString(fmt.Sprintf("- Errors: %s\n", fancy.CountText(strconv.Itoa(len(res.Errors)))))
	summary.WriteString(fmt.Sprintf("- Warnings: %s\n", fancy.CountText(strconv.Itoa(len(res.Warnings)))))
	if len(res.Errors)+len(res.Warnings) > 0 {
		summary.WriteString("\n" + fancy.SummaryText("Use --tree for details.") + "\n")
	}
	return summary.String()
}

// problemWidth caps tree node text so one verbose message does not wrap
// the whole tree.
const problemWidth = 120

func renderResultTree(vaultPath string, res *vault.Result) string {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render(vaultPath))

	if len(res.Errors) > 0 {
		branch := fancy.BranchNode("Errors", fmt.Sprintf("(%d)", len(res.Errors)))
		for _, p := range res.Errors {
			text := fancy.TruncateString(fmt.Sprintf("%s: %s", p.Code, p.Message), problemWidth)
			node := fancy.Tree().Root(fancy.ErrorText(text))
			if p.Path != "" {
				node.Child(fancy.PathText(p.Path))
			}
			branch.Child(node)
		}
		t.Child(branch)
	}

	if len(res.Warnings) > 0 {
		branch := fancy.BranchNode("Warnings", fmt.Sprintf("(%d)", len(res.Warnings)))
		for _, w := range res.Warnings {
			text := fancy.TruncateString(fmt.Sprintf("%s: %s", w.Code, w.Message), problemWidth)
			node := fancy.Tree().Root(fancy.WarnText(text))
			if w.Path != "" {
				node.Child(fancy.PathText(w.Path))
			}
			if w.Suggestion != "" {
				node.Child(fancy.SuggestionText(fancy.TruncateString(w.Suggestion, problemWidth)))
			}
			branch.Child(node)
		}
		t.Child(branch)
	}

	if len(res.Errors)+len(res.Warnings) == 0 {
		t.Child(fancy.ValidText("no problems found"))
	}

	return t.String()
}
