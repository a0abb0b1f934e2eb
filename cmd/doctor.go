package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videoedit-cli/internal/installer"
	"github.com/mlihgenel/videoedit-cli/internal/media"
	"github.com/mlihgenel/videoedit-cli/internal/ui"
)

var doctorInstall bool

// toolStatus bir harici aracın durumudur.
type toolStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Install   string `json:"install,omitempty"`
	ManualURL string `json:"manual_url,omitempty"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "ffmpeg ve ffprobe kurulumunu kontrol et",
	Long: `Dışa aktarma ve süre okuma için gereken ffmpeg/ffprobe araçlarını arar.
FFMPEG_PATH ve FFPROBE_PATH ortam değişkenleri de dikkate alınır.
--install ile eksik araçlar sistemin paket yöneticisiyle kurulur.

Örnekler:
  videoedit-cli doctor
  videoedit-cli doctor --install
  videoedit-cli doctor --output-format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses := checkTools()
		missing := 0
		for _, s := range statuses {
			if !s.Available {
				missing++
			}
		}

		if isJSONOutput() && !doctorInstall {
			return printJSON(map[string]any{
				"tools":           statuses,
				"package_manager": installer.DetectPackageManager(),
				"ok":              missing == 0,
			})
		}

		printToolStatuses(statuses)
		if missing == 0 {
			ui.PrintSuccess("Tüm gerekli araçlar kurulu. Hazırsınız.")
			return nil
		}

		if !doctorInstall {
			if pm := installer.DetectPackageManager(); pm != "" {
				ui.PrintInfo(fmt.Sprintf("Paket yöneticisi: %s — kurmak için: videoedit-cli doctor --install", pm))
			} else {
				ui.PrintWarning("Paket yöneticisi bulunamadı. Araçları manuel olarak kurmanız gerekiyor.")
			}
			return fmt.Errorf("%d arac eksik", missing)
		}

		// FFMPEG_PATH ile verilen ama bulunamayan araçlar paket yöneticisiyle düzelmez.
		if len(installer.GetMissingToolNames(missingToolNames(statuses))) == 0 {
			return fmt.Errorf("araclar PATH'te var; FFMPEG_PATH/FFPROBE_PATH degerlerini kontrol edin")
		}

		desc, err := installer.InstallTool("ffmpeg")
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Kuruldu: %s", desc))
		printToolStatuses(checkTools())
		return nil
	},
}

func checkTools() []toolStatus {
	probes := []struct {
		name string
		find func() (string, error)
	}{
		{"ffmpeg", media.FindFFmpeg},
		{"ffprobe", media.FindFFprobe},
	}

	out := make([]toolStatus, 0, len(probes))
	for _, p := range probes {
		s := toolStatus{Name: p.name}
		if path, err := p.find(); err == nil {
			s.Available = true
			s.Path = path
		} else {
			info := installer.GetInstallInfo(p.name)
			s.Install = info.Description
			s.ManualURL = info.ManualURL
		}
		out = append(out, s)
	}
	return out
}

func missingToolNames(statuses []toolStatus) []string {
	var names []string
	for _, s := range statuses {
		if !s.Available {
			names = append(names, s.Name)
		}
	}
	return names
}

func printToolStatuses(statuses []toolStatus) {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := ui.IconSuccess + " kurulu"
		detail := s.Path
		if !s.Available {
			state = ui.IconError + " eksik"
			detail = s.ManualURL
			if s.Install != "" {
				detail = s.Install
			}
		}
		rows = append(rows, []string{s.Name, state, detail})
	}
	ui.PrintTable([]string{"Araç", "Durum", "Detay"}, rows)
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorInstall, "install", false, "Eksik araçları paket yöneticisiyle kur")
	rootCmd.AddCommand(doctorCmd)
}
