package cmd

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/homegarden/gardenpages/internal/notfound"
)

var (
	renderAccept string
	renderMethod string
)

var renderCmd = &cobra.Command{
	Use:   "render <path-or-url>",
	Short: "Print the not-found response for a requested path",
	Long: `Prints the response a client would get for a path that does not exist.
Clients accepting text/html get the not-found page fragment with its copy
button; other clients get the JSON error body.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		page := pageFromArg(args[0])

		out := cmd.OutOrStdout()
		if !notfound.WantsHTML(renderAccept) {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(page.APIError(renderMethod))
		}
		return notfound.Render(out, page, cfg.Copy.Labels())
	},
}

// pageFromArg accepts either a bare path or an absolute URL. Anything that
// does not parse as an absolute URL is taken verbatim as the requested path.
func pageFromArg(arg string) notfound.Page {
	if strings.Contains(arg, "://") {
		if u, err := url.Parse(arg); err == nil && u.IsAbs() {
			return notfound.FromURL(u)
		}
	}
	return notfound.New(arg)
}

func init() {
	renderCmd.Flags().StringVar(&renderAccept, "accept", "text/html", "Accept header of the simulated client")
	renderCmd.Flags().StringVar(&renderMethod, "method", "GET", "HTTP method of the simulated request")
	rootCmd.AddCommand(renderCmd)
}
