package cli

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var docsFS embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgAvailableTopics)
				for _, topic := range docTopics() {
					fmt.Fprintf(cmd.OutOrStdout(), MsgTopicItem, topic)
				}
				return nil
			}
			return renderTopic(cmd, args[0])
		},
	}
}

func docTopics() []string {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, entry := range entries {
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics
}

func renderTopic(cmd *cobra.Command, topic string) error {
	data, err := docsFS.ReadFile("docs/" + topic + ".md")
	if err != nil {
		return fmt.Errorf(MsgErrUnknownTopic, topic)
	}

	// Pipes get the raw markdown
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	rendered, err := renderer.Render(string(data))
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
