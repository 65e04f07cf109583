package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/erdlang/erdc/internal/cliui"
)

var initDir string

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", ".", "directory to scaffold the starter .erd file into")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter .erd file",
	Long:  "Interactively generate a starter entity-relationship schema file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

type initAnswers struct {
	FileName     string `survey:"file_name"`
	FirstEntity  string `survey:"first_entity"`
	SecondEntity string `survey:"second_entity"`
	Related      bool   `survey:"related"`
}

func runInit() error {
	questions := []*survey.Question{
		{
			Name:     "file_name",
			Prompt:   &survey.Input{Message: "File name for the new schema:", Default: "schema.erd"},
			Validate: survey.Required,
		},
		{
			Name:     "first_entity",
			Prompt:   &survey.Input{Message: "Name of the first entity:", Default: "User"},
			Validate: survey.Required,
		},
		{
			Name:     "second_entity",
			Prompt:   &survey.Input{Message: "Name of a second entity:", Default: "Post"},
			Validate: survey.Required,
		},
		{
			Name:   "related",
			Prompt: &survey.Confirm{Message: "Relate them with a one-to-many relationship?", Default: true},
		},
	}

	answers := initAnswers{}
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	if strings.ContainsAny(answers.FileName, "/\\") {
		return fmt.Errorf("file name cannot contain path separators")
	}

	destPath := filepath.Join(initDir, answers.FileName)
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("file %s already exists", destPath)
	}

	content := scaffoldSource(answers)

	if err := os.MkdirAll(initDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", initDir, err)
	}
	if err := os.WriteFile(destPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	fmt.Println(cliui.FormatSuccess(fmt.Sprintf("Created %s", destPath), !isTTY()))
	fmt.Println("Build it with:")
	fmt.Printf("  erdc build %s\n", destPath)

	return nil
}

func scaffoldSource(a initAnswers) string {
	var b strings.Builder

	fmt.Fprintf(&b, "entity %s {\n  id int pk\n}\n\n", a.FirstEntity)

	if a.Related {
		fk := strings.ToLower(a.FirstEntity) + "_id"
		fmt.Fprintf(&b, "entity %s {\n  id int pk\n  %s int fk -> %s.id\n}\n\n", a.SecondEntity, fk, a.FirstEntity)
		fmt.Fprintf(&b, "rel {\n  %s 1 -- * %s\n}\n", a.FirstEntity, a.SecondEntity)
	} else {
		fmt.Fprintf(&b, "entity %s {\n  id int pk\n}\n", a.SecondEntity)
	}

	return b.String()
}
