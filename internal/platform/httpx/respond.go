package httpx

import (
	"encoding/json"
	"net/http"
)

// Todas las respuestas de la API usan el mismo envelope:
//   éxito:  {"success":true, "data":...}   (listas agregan "count")
//   error:  {"success":false, "error":"..."}
// Antes cada módulo duplicaba su writeJSON; con esta cantidad de módulos
// ya toca el helper común.

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK responde {"success":true,"data":...}.
func OK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{"success": true, "data": data})
}

// OKList responde {"success":true,"count":N,"data":[...]}.
func OKList(w http.ResponseWriter, status int, count int, data any) {
	writeJSON(w, status, envelope{"success": true, "count": count, "data": data})
}

// OKFields permite campos extra junto a success (ej. "available").
func OKFields(w http.ResponseWriter, status int, fields map[string]any) {
	out := envelope{"success": true}
	for k, v := range fields {
		out[k] = v
	}
	writeJSON(w, status, out)
}

// Fail responde {"success":false,"error":msg}.
func Fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{"success": false, "error": msg})
}
