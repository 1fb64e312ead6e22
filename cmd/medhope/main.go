package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"medhope-cli/internal/app"
	"medhope-cli/internal/tui"
)

const (
	version = "1.0.0"
	repoURL = "https://github.com/medicalhope/medhope-cli"
)

var (
	flagServer string
	flagMock   bool
)

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return app.Config{}, err
	}
	if env := os.Getenv("MEDHOPE_SERVER_URL"); env != "" {
		cfg.ServerURL = env
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	return cfg, nil
}

func main() {
	root := &cobra.Command{
		Use:     "medhope",
		Short:   "MedicalHope - terminal client for the clinic management system",
		Long:    "MedicalHope is a terminal client for the clinic management backend.\n\nRun without arguments to open the interactive UI: log in or register, then manage patients, appointments, and chat with the assistant.\n\nFor more information, visit: " + repoURL,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Printf("MedicalHope CLI v%s\n", version)
				fmt.Printf("Repository: %s\n", repoURL)
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			application := app.NewApplication(cfg, flagMock)

			p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	root.Flags().StringVarP(&flagServer, "server", "s", "", "Backend base URL (default from config or MEDHOPE_SERVER_URL)")
	root.Flags().BoolVarP(&flagMock, "mock", "m", false, "Run against the built-in mock backend with sample data")
	root.Flags().BoolP("version", "v", false, "Print version information")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored login session",
		Long:  "Remove the credentials saved by a previous login so the next launch starts at the sign-in screen.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.OpenCredentialStore("")
			if err := store.Clear(); err != nil {
				return fmt.Errorf("could not clear stored session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
	root.AddCommand(logoutCmd)

	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion",
		Long:  "Generate a shell completion script for medhope.\n\nExamples:\n  - medhope completion bash >> ~/.bashrc\n  - medhope completion zsh > ~/.zsh/completion/_medhope\n  - medhope completion fish > ~/.config/fish/completions/medhope.fish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	root.AddCommand(completionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
