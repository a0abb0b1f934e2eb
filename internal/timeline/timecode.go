package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Range iki zaman noktasından oluşan ham aralıktır. Koordinat sistemi
// (sanal ya da kaynak) çağırana bağlıdır.
type Range struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// Duration aralık uzunluğu.
func (r Range) Duration() time.Duration {
	return r.End - r.Start
}

// ParseTimecode "90", "90.5", "1:30", "00:01:30.250" ya da Go süre yazımı
// ("1m30s") biçimlerini kesin olarak (float kullanmadan) süreye çevirir.
func ParseTimecode(raw string) (time.Duration, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if value == "" {
		return 0, fmt.Errorf("bos zaman degeri")
	}
	if strings.HasPrefix(value, "-") {
		return 0, fmt.Errorf("zaman negatif olamaz: %s", raw)
	}
	if strings.ContainsAny(value, "hmsuµn") {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("zaman formati hatali: %s", raw)
		}
		return d, nil
	}

	if !strings.Contains(value, ":") {
		return parseSeconds(value)
	}

	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("zaman formati hatali: %s", raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return 0, fmt.Errorf("zaman formati hatali: %s", raw)
		}
	}

	seconds, err := parseSeconds(parts[len(parts)-1])
	if err != nil {
		return 0, err
	}
	if seconds >= time.Minute {
		return 0, fmt.Errorf("saniye 60'tan kucuk olmali: %s", raw)
	}

	minutes, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("zaman formati hatali: %s", raw)
	}

	var hours int64
	if len(parts) == 3 {
		if minutes >= 60 {
			return 0, fmt.Errorf("dakika 60'tan kucuk olmali: %s", raw)
		}
		hours, err = strconv.ParseInt(parts[0], 10, 64)
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("zaman formati hatali: %s", raw)
		}
	}

	if hours > math.MaxInt64/int64(time.Hour) || minutes > math.MaxInt64/int64(time.Minute) {
		return 0, fmt.Errorf("zaman cok buyuk: %s", raw)
	}
	total := time.Duration(hours) * time.Hour
	rest := time.Duration(minutes)*time.Minute + seconds
	if rest < 0 || total > math.MaxInt64-rest {
		return 0, fmt.Errorf("zaman cok buyuk: %s", raw)
	}
	return total + rest, nil
}

// parseSeconds "12" ya da "12.345" biçimini nanosaniye hassasiyetinde okur.
// Dokuzdan fazla ondalık basamak reddedilir.
func parseSeconds(value string) (time.Duration, error) {
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || sec < 0 {
		return 0, fmt.Errorf("gecersiz sayi: %s", value)
	}

	var nanos int64
	if frac != "" {
		if len(frac) > 9 {
			return 0, fmt.Errorf("en fazla 9 ondalik basamak: %s", value)
		}
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("gecersiz sayi: %s", value)
			}
		}
		padded := frac + strings.Repeat("0", 9-len(frac))
		nanos, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("gecersiz sayi: %s", value)
		}
	}

	// nanos < 1s oldugundan toplam MaxInt64'u asamaz.
	if sec > (math.MaxInt64-int64(time.Second))/int64(time.Second) {
		return 0, fmt.Errorf("zaman cok buyuk: %s", value)
	}
	return time.Duration(sec)*time.Second + time.Duration(nanos), nil
}

// FormatTimecode süreyi HH:MM:SS ya da HH:MM:SS.mmm olarak yazar.
func FormatTimecode(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	millis := (d + time.Millisecond/2) / time.Millisecond
	hours := millis / 3600000
	minutes := (millis % 3600000) / 60000
	seconds := (millis % 60000) / 1000
	ms := millis % 1000

	if ms == 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, hours, minutes, seconds, ms)
}

// FormatSeconds süreyi ffmpeg'in kabul ettiği ondalık saniye yazımına çevirir
// ("12", "12.5", "0.000001").
func FormatSeconds(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	whole := int64(d / time.Second)
	nanos := int64(d % time.Second)
	if nanos == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
	return fmt.Sprintf("%s%d.%s", sign, whole, frac)
}

// ParseRange "başlangıç-bitiş" biçimini okur.
func ParseRange(raw string) (Range, error) {
	token := strings.TrimSpace(raw)
	startRaw, endRaw, ok := strings.Cut(token, "-")
	if !ok {
		return Range{}, fmt.Errorf("gecersiz aralik: %s (orn: 00:00:05-00:00:08)", token)
	}
	start, err := ParseTimecode(startRaw)
	if err != nil {
		return Range{}, fmt.Errorf("gecersiz aralik baslangici: %s", strings.TrimSpace(startRaw))
	}
	end, err := ParseTimecode(endRaw)
	if err != nil {
		return Range{}, fmt.Errorf("gecersiz aralik bitisi: %s", strings.TrimSpace(endRaw))
	}
	if end <= start {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, token)
	}
	return Range{Start: start, End: end}, nil
}

// ParseRanges virgülle ayrılmış aralık listesini sırasını koruyarak okur.
// Aralıklar birleştirilmez: her biri sırayla uygulanacak ayrı bir düzenlemedir.
func ParseRanges(spec string) ([]Range, error) {
	tokens := strings.Split(spec, ",")
	ranges := make([]Range, 0, len(tokens))
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}
		r, err := ParseRange(token)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("en az bir aralik belirtmelisiniz")
	}
	return ranges, nil
}

// Scale terminal sütunları ile sanal zaman arasında dönüşüm yapar.
type Scale struct {
	Width int
	Total time.Duration
}

// ToVirtual sütunu sanal zamana çevirir; son sütun toplam süreye denk gelir.
func (s Scale) ToVirtual(column int) time.Duration {
	if s.Width <= 1 || s.Total <= 0 {
		return 0
	}
	if column <= 0 {
		return 0
	}
	if column >= s.Width-1 {
		return s.Total
	}
	return s.Total * time.Duration(column) / time.Duration(s.Width-1)
}

// ToColumn sanal zamanı en yakın sütuna çevirir.
func (s Scale) ToColumn(virtual time.Duration) int {
	if s.Width <= 1 || s.Total <= 0 || virtual <= 0 {
		return 0
	}
	if virtual >= s.Total {
		return s.Width - 1
	}
	span := time.Duration(s.Width - 1)
	return int((virtual*span + s.Total/2) / s.Total)
}
