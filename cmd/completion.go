package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for wfdash on stdout.

Bash:
  source <(wfdash completion bash)
  wfdash completion bash > ~/.local/share/bash-completion/completions/wfdash

Zsh:
  mkdir -p ~/.zsh/completion
  wfdash completion zsh > ~/.zsh/completion/_wfdash
  # ~/.zshrc needs: fpath=(~/.zsh/completion $fpath); autoload -Uz compinit && compinit

Fish:
  wfdash completion fish > ~/.config/fish/completions/wfdash.fish

PowerShell:
  wfdash completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(cmd.Root(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// generateCompletion writes the completion script for shell to stdout.
func generateCompletion(root *cobra.Command, shell string) {
	gen, ok := completionGenerators[shell]
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err := gen(root, deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}
