package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// outputMode komut sonuçlarının basılma biçimidir.
type outputMode string

const (
	outputText outputMode = "text"
	outputJSON outputMode = "json"
)

func parseOutputMode(raw string) (outputMode, error) {
	switch outputMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", outputText:
		return outputText, nil
	case outputJSON:
		return outputJSON, nil
	}
	return "", fmt.Errorf("gecersiz output-format: %s (text|json)", raw)
}

// isJSONOutput --output-format json verildiğinde true döner. JSON modunda
// ilerleme çubukları ve renkli mesajlar basılmaz; stdout yalnızca JSON taşır.
func isJSONOutput() bool {
	mode, err := parseOutputMode(outputFormat)
	return err == nil && mode == outputJSON
}

func printJSON(payload any) error {
	return writeJSON(os.Stdout, payload)
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}
