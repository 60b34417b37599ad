// Package media реализует политику доказательных материалов:
// до тяжести 5 включительно нужно фото, выше - видео.
package media

import (
	"fmt"
	"path"
	"strings"

	"github.com/shenikar/incident_map/internal/apperr"
)

// Kind - тип медиафайла
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ImageSeverityThreshold - максимальная тяжесть, для которой достаточно фото
const ImageSeverityThreshold = 5.0

const bytesInMB = 1024 * 1024

// Attachment - файл-кандидат, который проверяется перед загрузкой
type Attachment struct {
	Kind Kind
	Size int64
}

// Limits - максимальные размеры для каждого типа
type Limits struct {
	MaxImageBytes int64
	MaxVideoBytes int64
}

// Ceiling возвращает лимит размера для типа
func (l Limits) Ceiling(kind Kind) int64 {
	if kind == KindVideo {
		return l.MaxVideoBytes
	}
	return l.MaxImageBytes
}

// Violation - причина отказа
type Violation string

const (
	ViolationMissing  Violation = "missing"
	ViolationMismatch Violation = "mismatch"
	ViolationTooLarge Violation = "too_large"
)

// PolicyError - отказ по политике медиа. Всегда оборачивает apperr.ErrPolicy.
type PolicyError struct {
	Reason   Violation
	Required Kind
	Supplied Kind
	MaxBytes int64
}

func (e *PolicyError) Error() string {
	switch e.Reason {
	case ViolationMissing:
		if e.Required == KindVideo {
			return "video required: incidents with severity above 5 must include a video"
		}
		return "image required: incidents with severity 5 or below must include an image"
	case ViolationMismatch:
		return fmt.Sprintf("%s required, %s supplied", e.Required, e.Supplied)
	case ViolationTooLarge:
		return fmt.Sprintf("%s is too large: max %.1fMB", e.Required, float64(e.MaxBytes)/bytesInMB)
	default:
		return "media policy violation"
	}
}

func (e *PolicyError) Unwrap() error {
	return apperr.ErrPolicy
}

func (e *PolicyError) PublicMessage() string {
	return e.Error()
}

// RequiredKind возвращает обязательный тип медиа для заявленной тяжести
func RequiredKind(severity float64) Kind {
	if severity <= ImageSeverityThreshold {
		return KindImage
	}
	return KindVideo
}

// Validate проверяет, удовлетворяет ли файл политике для заявленной тяжести.
// file == nil означает, что файл не приложен.
func Validate(severity float64, file *Attachment, limits Limits) error {
	required := RequiredKind(severity)
	if file == nil {
		return &PolicyError{Reason: ViolationMissing, Required: required}
	}
	if file.Kind != required {
		return &PolicyError{Reason: ViolationMismatch, Required: required, Supplied: file.Kind}
	}
	if ceiling := limits.Ceiling(required); file.Size > ceiling {
		return &PolicyError{Reason: ViolationTooLarge, Required: required, Supplied: file.Kind, MaxBytes: ceiling}
	}
	return nil
}

var videoExtensions = map[string]struct{}{
	"mp4": {}, "mov": {}, "webm": {}, "m4v": {}, "avi": {}, "mkv": {},
}

var imageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "bmp": {}, "svg": {},
}

// InferKindFromURL определяет тип уже сохраненного медиа по расширению.
// Используется только для выбора способа отображения, по умолчанию - image.
func InferKindFromURL(rawURL string) Kind {
	u := rawURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u), "."))
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	return KindImage
}

// KindFromMIME определяет тип по MIME-типу файла
func KindFromMIME(mime string) (Kind, error) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch {
	case strings.HasPrefix(mime, "image/"):
		return KindImage, nil
	case strings.HasPrefix(mime, "video/"):
		return KindVideo, nil
	default:
		return "", apperr.Validation("unsupported media type %q", mime)
	}
}

// Extension возвращает расширение для ключа объекта по MIME-типу
func Extension(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/svg+xml":
		return "svg"
	case "video/quicktime":
		return "mov"
	case "video/x-msvideo":
		return "avi"
	case "video/x-matroska":
		return "mkv"
	case "video/x-m4v":
		return "m4v"
	}
	if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
		return sub
	}
	return "bin"
}
