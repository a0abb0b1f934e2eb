package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/profile"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Hazır dışa aktarma profillerini listele",
	Long: `--profile ile kullanılabilecek dışa aktarma profillerini gösterir. Komut
satırında verilen flag'ler profil değerlerinden önceliklidir.

Örnekler:
  videoedit-cli profiles
  videoedit-cli profiles --output-format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := profile.Names()
		defs := make([]profile.Definition, 0, len(names))
		for _, name := range names {
			p, err := profile.Resolve(name)
			if err != nil {
				return err
			}
			defs = append(defs, p)
		}

		if isJSONOutput() {
			return printJSON(defs)
		}

		rows := make([][]string, 0, len(defs))
		for _, p := range defs {
			rows = append(rows, profileRow(p))
		}
		ui.PrintTable([]string{"Profil", "Format", "Codec", "Kalite", "Metadata", "Rapor", "Retry", "Açıklama"}, rows)
		return nil
	},
}

func profileRow(p profile.Definition) []string {
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	quality := "-"
	if p.Quality != nil {
		quality = fmt.Sprintf("%d", *p.Quality)
	}
	retry := "-"
	if p.Retry != nil {
		retry = fmt.Sprintf("%d", *p.Retry)
		if p.RetryDelay != nil && *p.Retry > 0 {
			retry += " / " + p.RetryDelay.String()
		}
	}
	return []string{
		p.Name,
		orDash(p.TargetFormat),
		orDash(p.Codec),
		quality,
		orDash(p.MetadataMode),
		orDash(p.Report),
		retry,
		p.Description,
	}
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
