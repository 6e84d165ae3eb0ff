package screen

import (
	"strings"

	"weather-screen/internal/domain/entity"
)

// ConditionCategory groups provider conditions that share an icon
type ConditionCategory string

const (
	CategoryClear        ConditionCategory = "clear"
	CategoryPartlyCloudy ConditionCategory = "partly-cloudy"
	CategoryCloudy       ConditionCategory = "cloudy"
	CategoryFog          ConditionCategory = "fog"
	CategoryRain         ConditionCategory = "rain"
	CategorySleet        ConditionCategory = "sleet"
	CategorySnow         ConditionCategory = "snow"
	CategoryThunder      ConditionCategory = "thunder"
	CategoryUnknown      ConditionCategory = "unknown"
)

// categoryByCode maps weather API condition codes
var categoryByCode = map[int]ConditionCategory{
	1000: CategoryClear,
	1003: CategoryPartlyCloudy,
	1006: CategoryCloudy,
	1009: CategoryCloudy,
	1030: CategoryFog,
	1135: CategoryFog,
	1147: CategoryFog,
	1063: CategoryRain,
	1150: CategoryRain,
	1153: CategoryRain,
	1180: CategoryRain,
	1183: CategoryRain,
	1186: CategoryRain,
	1189: CategoryRain,
	1192: CategoryRain,
	1195: CategoryRain,
	1240: CategoryRain,
	1243: CategoryRain,
	1246: CategoryRain,
	1066: CategorySnow,
	1114: CategorySnow,
	1117: CategorySnow,
	1210: CategorySnow,
	1213: CategorySnow,
	1216: CategorySnow,
	1219: CategorySnow,
	1222: CategorySnow,
	1225: CategorySnow,
	1255: CategorySnow,
	1258: CategorySnow,
	1069: CategorySleet,
	1072: CategorySleet,
	1168: CategorySleet,
	1171: CategorySleet,
	1198: CategorySleet,
	1201: CategorySleet,
	1204: CategorySleet,
	1207: CategorySleet,
	1237: CategorySleet,
	1249: CategorySleet,
	1252: CategorySleet,
	1261: CategorySleet,
	1264: CategorySleet,
	1087: CategoryThunder,
	1273: CategoryThunder,
	1276: CategoryThunder,
	1279: CategoryThunder,
	1282: CategoryThunder,
}

// keywordRules is checked in order, so narrower rules come first
var keywordRules = []struct {
	category ConditionCategory
	keywords []string
}{
	{CategoryThunder, []string{"thunder", "гроз"}},
	{CategoryFog, []string{"fog", "mist", "haze", "туман", "дымка"}},
	{CategorySleet, []string{"sleet", "ice pellets", "freezing", "ледян", "мокрый снег"}},
	{CategorySnow, []string{"snow", "blizzard", "снег", "метел"}},
	{CategoryRain, []string{"rain", "drizzle", "shower", "дожд", "ливен", "ливн", "морос"}},
	{CategoryPartlyCloudy, []string{"partly", "переменная облачность", "небольшая облачность"}},
	{CategoryCloudy, []string{"cloud", "overcast", "облачн", "пасмурн"}},
	{CategoryClear, []string{"clear", "sunny", "ясно", "солнечно"}},
}

// Categorize picks a category from the condition code, falling back to keywords in the text.
func Categorize(text string, code int) ConditionCategory {
	if category, ok := categoryByCode[code]; ok {
		return category
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return CategoryUnknown
	}
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}

// IconFor builds the icon reference for a category at day or night, e.g. "day-clear".
func IconFor(category ConditionCategory, isDay bool) entity.IconID {
	period := "night"
	if isDay {
		period = "day"
	}
	return entity.IconID(period + "-" + string(category))
}

// ResolveIcon selects the icon for a condition.
func ResolveIcon(text string, code int, isDay bool) entity.IconID {
	return IconFor(Categorize(text, code), isDay)
}
