package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"formulator/internal/apperr"
	"formulator/internal/models"
)

// Response — единый конверт всех JSON-ответов.
type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	Details    []string           `json:"details,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

const maxBodyBytes = 1 << 20

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		return
	}
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{Success: true, Data: data})
}

// Message — успех без данных, только текст.
func Message(w http.ResponseWriter, status int, msg string) {
	write(w, status, Response{Success: true, Message: msg})
}

func Page[T any](w http.ResponseWriter, page *models.PageResult[T]) {
	p := page.Pagination
	write(w, http.StatusOK, Response{Success: true, Data: page.Items, Pagination: &p})
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Response{Success: false, Error: errMsg})
}

// Failure — неуспех с полезной нагрузкой (частичный отчёт пакетной операции).
func Failure(w http.ResponseWriter, status int, errMsg string, data interface{}) {
	write(w, status, Response{Success: false, Error: errMsg, Data: data})
}

// StatusFor выбирает HTTP-статус по сигнальной ошибке.
func StatusFor(err error) int {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrUnauthorized), errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrSlugConflict),
		errors.Is(err, apperr.ErrAlreadyExists),
		errors.Is(err, apperr.ErrUserHasContent):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidRequest), errors.Is(err, apperr.ErrSelfDelete):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError пишет ошибку сервиса в конверт. Текст внутренних ошибок наружу
// не отдаётся.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		write(w, status, Response{Success: false, Error: "Ошибка валидации", Details: ve.Messages()})
		return
	}
	if status == http.StatusInternalServerError {
		Error(w, status, "Внутренняя ошибка сервера")
		return
	}
	Error(w, status, err.Error())
}

// DecodeJSON читает тело запроса (не больше 1 МБ). Неизвестные поля
// игнорируются, мусор после объекта — ошибка.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperr.Invalid("невалидный JSON: %v", err)
	}
	if dec.More() {
		return apperr.Invalid("невалидный JSON: лишние данные после объекта")
	}
	return nil
}

// IntQuery читает целый query-параметр; пустое или нечисловое значение даёт def.
func IntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
