package installer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// InstallInfo kurulum bilgisini tutar
type InstallInfo struct {
	ToolName    string
	Command     string
	Args        []string
	Description string
	ManualURL   string
	Supported   bool // Otomatik kurulum destekleniyor mu
}

const ffmpegManualURL = "https://ffmpeg.org/download.html"

var lookPath = exec.LookPath

// Paket yöneticisi -> (komut, argümanlar). ffprobe ffmpeg paketiyle gelir.
var ffmpegInstallers = map[string][]string{
	"brew":   {"brew", "install", "ffmpeg"},
	"apt":    {"sudo", "apt", "install", "-y", "ffmpeg"},
	"dnf":    {"sudo", "dnf", "install", "-y", "ffmpeg"},
	"yum":    {"sudo", "yum", "install", "-y", "ffmpeg"},
	"pacman": {"sudo", "pacman", "-S", "--noconfirm", "ffmpeg"},
	"choco":  {"choco", "install", "ffmpeg", "-y"},
	"winget": {"winget", "install", "Gyan.FFmpeg"},
}

func managersFor(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"brew"}
	case "linux":
		return []string{"apt", "dnf", "yum", "pacman"}
	case "windows":
		return []string{"choco", "winget"}
	}
	return nil
}

// DetectPackageManager mevcut paket yöneticisini tespit eder
func DetectPackageManager() string {
	for _, pm := range managersFor(runtime.GOOS) {
		if _, err := lookPath(pm); err == nil {
			return pm
		}
	}
	return ""
}

// GetInstallInfo belirli bir araç için kurulum bilgilerini döner
func GetInstallInfo(toolName string) InstallInfo {
	switch strings.ToLower(strings.TrimSpace(toolName)) {
	case "ffmpeg", "ffprobe":
		return ffmpegInstallInfo(DetectPackageManager())
	}
	return InstallInfo{ToolName: toolName}
}

func ffmpegInstallInfo(pm string) InstallInfo {
	info := InstallInfo{
		ToolName:  "FFmpeg",
		ManualURL: ffmpegManualURL,
	}
	argv, ok := ffmpegInstallers[pm]
	if !ok {
		return info
	}
	info.Command = argv[0]
	info.Args = argv[1:]
	info.Description = strings.Join(argv, " ")
	info.Supported = true
	return info
}

// InstallTool belirli bir aracı kurar
func InstallTool(toolName string) (string, error) {
	info := GetInstallInfo(toolName)

	if !info.Supported {
		return "", fmt.Errorf(
			"%s otomatik olarak kurulamiyor.\nManuel kurulum: %s",
			info.ToolName, info.ManualURL,
		)
	}

	cmd := exec.Command(info.Command, info.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s kurulumu basarisiz: %w", info.ToolName, err)
	}

	return info.Description, nil
}

// GetMissingToolNames PATH'te bulunamayan araçları döner
func GetMissingToolNames(tools []string) []string {
	var missing []string
	for _, tool := range tools {
		if _, err := lookPath(strings.ToLower(tool)); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}
