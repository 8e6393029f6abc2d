package models

// AgeRange описывает рекомендуемый возрастной диапазон темы.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Theme — статическая тема истории: шаблон текста, количество страниц
// и упорядоченный список шаблонов промптов для иллюстраций (по одному на
// страницу). Themes are seed data and are never mutated at runtime.
type Theme struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Template      string   `json:"-"`
	PageCount     int      `json:"pages"`
	ImagePrompts  []string `json:"-"`
	AgeRange      AgeRange `json:"age_range"`
	EstimatedTime string   `json:"estimated_time"`
}
