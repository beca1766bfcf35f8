package game

// routeTable translates backend game codes to the frontend route segments the
// player app serves. Codes without an entry pass through unchanged.
var routeTable = map[string]string{
	"spin-win": "spin-wheel",
	"dice":     "dice-roll",
	"memory":   "memory-match",
	"tap":      "quick-tap",
}

// RouteForCode maps a backend game code to its frontend route segment,
// falling back to the code itself for unmapped values.
func RouteForCode(code string) string {
	if route, ok := routeTable[code]; ok {
		return route
	}
	return code
}
