package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/model"
	"weather-screen/pkg/msg"
)

//go:embed templates/*.html
var templateFS embed.FS

// ScreenTemplate is the name of the single screen page
const ScreenTemplate = "screen.html"

// Labels holds the fixed texts of the screen
type Labels struct {
	Loading      string
	ErrorTitle   string
	ErrorHint    string
	Time         string
	Wind         string
	WindUnit     string
	Pressure     string
	PressureUnit string
	Humidity     string
	HumidityUnit string
}

// ScreenPage is the data the screen template renders
type ScreenPage struct {
	State      model.ViewState
	Cities     []entity.City
	Selected   entity.City
	Labels     Labels
	BasePath   string
	StreamPath string
}

// Renderer implements echo.Renderer over the embedded templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"number": formatNumber,
		"glyph":  Glyph,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// LoadLabels reads the screen texts from the message catalog
func LoadLabels() Labels {
	return Labels{
		Loading:      msg.GetMessageOrDefault("screen.loading", "Загрузка"),
		ErrorTitle:   msg.GetMessageOrDefault("screen.error.fallback", "Ошибка"),
		ErrorHint:    msg.GetMessageOrDefault("screen.error.hint", ""),
		Time:         msg.GetMessageOrDefault("screen.details.time", "Время"),
		Wind:         msg.GetMessageOrDefault("screen.details.wind", "Ск. ветра"),
		WindUnit:     msg.GetMessageOrDefault("screen.details.wind-unit", "км/ч"),
		Pressure:     msg.GetMessageOrDefault("screen.details.pressure", "Давление"),
		PressureUnit: msg.GetMessageOrDefault("screen.details.pressure-unit", "мбар"),
		Humidity:     msg.GetMessageOrDefault("screen.details.humidity", "Влажность"),
		HumidityUnit: msg.GetMessageOrDefault("screen.details.humidity-unit", "%"),
	}
}

// formatNumber prints a float with one decimal at least, like 21.5 or 3.0
func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatFloat(value, 'f', 1, 64)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

var glyphs = map[string]string{
	"clear":         "\u2600",
	"partly-cloudy": "\u26C5",
	"cloudy":        "\u2601",
	"fog":           "\U0001F32B",
	"rain":          "\U0001F327",
	"sleet":         "\U0001F328",
	"snow":          "\u2744",
	"thunder":       "\u26C8",
}

// Glyph maps an icon reference such as "night-rain" to a text glyph. Night clear skies get a moon.
func Glyph(icon entity.IconID) string {
	period, category, found := strings.Cut(string(icon), "-")
	if !found {
		return "\u2753"
	}
	if period == "night" && category == "clear" {
		return "\U0001F319"
	}
	if glyph, ok := glyphs[category]; ok {
		return glyph
	}
	return "\u2753"
}
