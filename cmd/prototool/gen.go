package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fscs/prototool/internal/config"
	"github.com/fscs/prototool/internal/platform"
	"github.com/fscs/prototool/pkg/protokoll"
)

// padFromTemplate is what --from-pad holds when given without a URL.
const padFromTemplate = "auto"

var flagAliases = map[string]string{
	"tc": "to-clipboard",
	"fc": "from-clipboard",
	"tp": "to-pad",
	"fp": "from-pad",
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the Protokoll of the next Sitzung",
	Long: `gen fetches the next Sitzung at or after today and writes its Protokoll to
<site-root>/<content-dir>/<lang>/protokolle/<year>/<month>-<day>-protokoll.md.

With --to-clipboard or --to-pad the rendered text goes to the clipboard (and the pad is
opened in the browser) instead. --from-clipboard and --from-pad import an edited
Protokoll back into the content tree. The pad URL may follow --from-pad after a space
or an equals sign.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGen,
}

func runGen(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	mode, err := protokoll.ResolveMode(protokoll.Flags{
		ToClipboard:   mustBool(flags, "to-clipboard"),
		FromClipboard: mustBool(flags, "from-clipboard"),
		ToPad:         mustBool(flags, "to-pad"),
		FromPad:       flags.Changed("from-pad"),
	})
	if err != nil {
		return err
	}
	padURL, err := padURLArg(flags, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags, config.DefaultFiles()...)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	gen, err := platform.New(cfg, platform.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	noAsk, _ := flags.GetBool("no-ask-presence")
	force, _ := flags.GetBool("force")

	res, err := gen.Run(cmd.Context(), protokoll.Request{
		Mode:   mode,
		AsOf:   today(loc),
		PadURL: padURL,
		Force:  force,
		Ask:    !noAsk && !mode.IsImport(),
	})
	if err != nil {
		return err
	}

	if res.Path != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	}

	if edit, _ := flags.GetBool("edit"); edit && res.Path != "" {
		return openEditor(cfg.Editor, res.Path)
	}
	return nil
}

// padURLArg returns the pad to import from, empty for the one derived from the date.
// pflag cannot tell "--from-pad URL" from a flag without value followed by an argument, so
// a single argument after a bare --from-pad is taken as its URL.
func padURLArg(flags *pflag.FlagSet, args []string) (string, error) {
	value, _ := flags.GetString("from-pad")
	if len(args) == 0 {
		if value == padFromTemplate {
			return "", nil
		}
		return value, nil
	}
	if !flags.Changed("from-pad") || value != padFromTemplate || len(args) > 1 {
		return "", fmt.Errorf("unexpected argument %q", args[0])
	}
	return args[0], nil
}

func today(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// openEditor runs editor on path and waits for it. The editor may carry arguments, e.g. "code -w".
func openEditor(editor, path string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return fmt.Errorf("no editor configured: set editor or $EDITOR")
	}
	c := exec.Command(fields[0], append(fields[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", fields[0], err)
	}
	return nil
}

func mustBool(flags *pflag.FlagSet, name string) bool {
	v, _ := flags.GetBool(name)
	return v
}

func normalizeAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if full, ok := flagAliases[name]; ok {
		name = full
	}
	return pflag.NormalizedName(name)
}

func init() {
	rootCmd.AddCommand(genCmd)

	f := genCmd.Flags()
	f.StringP("endpoint-url", "U", "", "Base URL of the council API")
	f.StringP("lang", "l", "", "Language directory below the content directory")
	f.String("content-dir", "", "Content directory, relative to the site root or absolute")
	f.String("role", "", "Role whose members form the attendance roster")
	f.String("timezone", "", "Timezone for dates and event times (IANA name or Local)")
	f.String("attendance-policy", "", "Attendance without prompting: nobody or available")
	f.String("pad-url-template", "", "Pad URL, {date} is replaced by YYYY-MM-DD")
	f.String("template", "", "Template file replacing the built-in one")
	f.String("editor", "", "Editor for --edit (defaults to $EDITOR)")

	f.BoolP("edit", "e", false, "Open the written file in the editor")
	f.BoolP("force", "f", false, "Overwrite an existing Protokoll")
	f.Bool("no-ask-presence", false, "Do not prompt for attendance, apply the policy instead")

	f.Bool("to-clipboard", false, "Copy the Protokoll to the clipboard (alias --tc)")
	f.Bool("from-clipboard", false, "Import the Protokoll from the clipboard (alias --fc)")
	f.Bool("to-pad", false, "Copy the Protokoll to the clipboard and open the pad (alias --tp)")
	f.String("from-pad", "", "Import the Protokoll from the pad, optionally from the given URL (alias --fp)")
	f.Lookup("from-pad").NoOptDefVal = padFromTemplate

	f.SetNormalizeFunc(normalizeAliases)
}
