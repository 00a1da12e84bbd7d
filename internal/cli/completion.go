package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "duration", "file")
	IsFile    bool     // true if the flag takes a file path
	IsRule    bool     // true if values come from the rule list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion
// generation. The order controls the generated output for each shell.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "file", Short: "f", Help: "Triangle input file", IsFile: true, ValueName: "file"},
	{Long: "rule", Short: "r", Help: "Path rule to evaluate", IsRule: true, ValueName: "rule"},
	{Long: "timeout", Short: "t", Help: "Maximum execution time", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "max-rows", Help: "Maximum accepted triangle rows", Values: []string{"100", "1000", "10000"}, ValueName: "rows"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "details", Short: "d", Help: "Show detailed statistics"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "output", Short: "o", Help: "Result output file", IsFile: true, ValueName: "file"},
	{Long: "metrics-out", Help: "Prometheus textfile path", IsFile: true, ValueName: "file"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Open the terminal dashboard"},
	{Long: "interactive", Short: "i", Help: "Start interactive mode"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the
// specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - rules: List of available rule keys.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, rules []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, rules)
	case "zsh":
		return generateZshCompletion(out, rules)
	case "fish":
		return generateFishCompletion(out, rules)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, rules)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// formatRuleList joins rule keys with space separators.
func formatRuleList(rules []string) string {
	return strings.Join(rules, " ")
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, rules []string) error {
	// Build opts string from registry
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Build case entries from registry.
	// Order: rule, completion, file, remaining value flags.
	type caseEntry struct {
		patterns []string
		body     string
	}
	bashCaseEntry := func(f FlagCompletion) caseEntry {
		return caseEntry{
			patterns: []string{"--" + f.Long},
			body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
		}
	}
	var orderedCases []caseEntry

	// 1. Rule flags
	for _, f := range flagRegistry {
		if f.IsRule {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${rules}" -- "${cur}") )`,
			})
		}
	}

	// 2. Completion flag (static values, comes before file entries)
	for _, f := range flagRegistry {
		if f.Long == "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// 3. File completion flags
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	// 4. Remaining flags with static values (non-rule, non-file, non-completion)
	for _, f := range flagRegistry {
		if !f.IsRule && !f.IsFile && f.Long != "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// Format case entries
	var caseBody strings.Builder
	for _, c := range orderedCases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	ruleList := formatRuleList(rules)

	script := fmt.Sprintf(`# Bash completion script for tricalc
# Add this to your ~/.bashrc or ~/.bash_completion

_tricalc_completions() {
    local cur prev opts rules
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available rules
    rules="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _tricalc_completions tricalc
`, strings.Join(opts, " "), ruleList, caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, rules []string) error {
	// Build _arguments entries from registry
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	ruleList := formatRuleList(rules)

	script := fmt.Sprintf(`#compdef tricalc

# Zsh completion script for tricalc
# Add this to your ~/.zshrc or place in $fpath

_tricalc() {
    local -a rules
    rules=(%s all)

    _arguments -s \
%s
}

_tricalc "$@"
`, ruleList, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	// Build the value suffix
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsRule {
		valueSuffix = fmt.Sprintf(":%s:($rules)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, rules []string) error {
	var lines []string

	lines = append(lines, "# Fish completion script for tricalc")
	lines = append(lines, "# Add this to ~/.config/fish/completions/tricalc.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c tricalc -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Input", flags: filterFlags("file", "rule", "timeout", "max-rows")},
		{comment: "# Output options", flags: filterFlags("verbose", "details", "quiet", "output", "metrics-out", "no-color")},
		{comment: "# Modes", flags: filterFlags("tui", "interactive", "completion")},
	}

	ruleList := formatRuleList(rules)

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, ruleList))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(names ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, name := range names {
		for _, f := range flagRegistry {
			if f.Long == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, ruleList string) string {
	var parts []string
	parts = append(parts, "complete -c tricalc")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsRule {
		parts = append(parts, fmt.Sprintf("-xa '%s all'", ruleList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, rules []string) error {
	// Build $options entries from registry
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Build context-aware switch entries for rule and static-value flags.
	var switchEntries []string

	psSwitchEntry := func(f FlagCompletion) string {
		var quotedVals []string
		for _, v := range f.Values {
			quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
		}
		return fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", "))
	}

	// Rule flags first
	for _, f := range flagRegistry {
		if f.IsRule {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            $tricalcRules | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}

	// Remaining value flags in registry order
	for _, f := range flagRegistry {
		if !f.IsRule && !f.IsFile && len(f.Values) > 0 {
			switchEntries = append(switchEntries, psSwitchEntry(f))
		}
	}

	// Format rule list for PowerShell
	psRuleList := ""
	for i, rule := range rules {
		if i > 0 {
			psRuleList += ", "
		}
		psRuleList += fmt.Sprintf("'%s'", rule)
	}

	script := fmt.Sprintf(`# PowerShell completion script for tricalc
# Add this to your $PROFILE

$tricalcRules = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'tricalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psRuleList, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
