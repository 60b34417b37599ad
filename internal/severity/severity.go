// Package severity считает итоговую (агрегированную) тяжесть инцидента
// по его базовой оценке и ленте обновлений.
package severity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	MinSeverity     = 1.0
	MaxSeverity     = 10.0
	DefaultSeverity = 5.0

	// baseWeight - вес исходного сообщения относительно одного свежего обновления
	baseWeight = 0.4
)

// Sample - обновление инцидента в том виде, в каком оно нужно для агрегации
type Sample struct {
	Severity  float64
	CreatedAt time.Time
}

// Aggregate возвращает взвешенную по давности тяжесть инцидента в диапазоне [1, 10].
// Функция чистая: текущее время передается вызывающим.
func Aggregate(base float64, updates []Sample, now time.Time) float64 {
	base = orDefault(base)
	if len(updates) == 0 {
		return Clamp(base)
	}

	totalWeighted := base * baseWeight
	totalWeight := baseWeight
	for _, u := range updates {
		age := now.Sub(u.CreatedAt)
		if age < 0 {
			age = 0
		}
		w := DecayWeight(age)
		totalWeighted += orDefault(u.Severity) * w
		totalWeight += w
	}
	return Clamp(totalWeighted / totalWeight)
}

// DecayWeight возвращает вес обновления по его возрасту
func DecayWeight(age time.Duration) float64 {
	switch {
	case age < time.Hour:
		return 1.0
	case age < 6*time.Hour:
		return 0.7
	case age < 24*time.Hour:
		return 0.4
	default:
		return 0.1
	}
}

// Clamp ограничивает значение диапазоном [1, 10]
func Clamp(v float64) float64 {
	return math.Max(MinSeverity, math.Min(MaxSeverity, v))
}

// Round округляет до двух знаков для отображения
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseBase приводит пришедшее значение тяжести (число или числовая строка) к float64.
// Отсутствующее или нечисловое значение считается равным 5.
func ParseBase(v any) float64 {
	switch t := v.(type) {
	case nil:
		return DefaultSeverity
	case float64:
		return orDefault(t)
	case float32:
		return orDefault(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return DefaultSeverity
		}
		return orDefault(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return DefaultSeverity
		}
		return orDefault(f)
	default:
		return DefaultSeverity
	}
}

func orDefault(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultSeverity
	}
	return v
}
