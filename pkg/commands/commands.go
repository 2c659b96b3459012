package commands

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/store"
)

var (
	oo = &base.OutputOptions{}

	configFile  string
	journalFile string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "trail",
		Short: base.Wrap80("Journal what you are doing, straight from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file to read instead of searching for .trailrc.")
	cmd.PersistentFlags().StringVar(&journalFile, "file", "",
		"Journal file to use instead of the configured one.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addFinish(topLevel)
	addCancel(topLevel)
	addAgain(topLevel)
	addNote(topLevel)
	addTag(topLevel)
	addUntag(topLevel)
	addFlag(topLevel)
	addUnflag(topLevel)
	addMove(topLevel)
	addArchive(topLevel)
	addRotate(topLevel)
	addShow(topLevel)
	addRecent(topLevel)
	addToday(topLevel)
	addYesterday(topLevel)
	addOn(topLevel)
	addSince(topLevel)
	addGrep(topLevel)
	addCalendar(topLevel)
	addView(topLevel)
	addViews(topLevel)
	addSections(topLevel)
	addTags(topLevel)
	addStrike(topLevel)
	addEdit(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addUndo(topLevel)
	addRedo(topLevel)
	addConfig(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// persistence loads the settings and opens the journal store, honoring the
// global --config and --file overrides.
func persistence() (*config.Config, *store.Store, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg, journalFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func sectionCompletions(toComplete string) []string {
	_, s, err := persistence()
	if err != nil {
		return nil
	}
	j, err := s.Load()
	if err != nil {
		return nil
	}
	names := make([]string, 0, 8)
	for _, name := range j.SectionNames() {
		if toComplete == "" || strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			names = append(names, name)
		}
	}
	return names
}

func completeSections(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return sectionCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}
