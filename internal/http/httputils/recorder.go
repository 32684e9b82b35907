package httputils

import "net/http"

type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	Size       int
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w}
}

// WriteHeader перехватывает и сохраняет статус код
func (r *ResponseRecorder) WriteHeader(status int) {
	if r.StatusCode == 0 {
		r.StatusCode = status
	}
	r.ResponseWriter.WriteHeader(status)
}

// Write перехватывает и сохраняет размер ответа
func (r *ResponseRecorder) Write(b []byte) (int, error) {
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.Size += size
	return size, err
}

// Status возвращает 200, если обработчик ничего не записал
func (r *ResponseRecorder) Status() int {
	if r.StatusCode == 0 {
		return http.StatusOK
	}
	return r.StatusCode
}
