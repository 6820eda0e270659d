package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// 业务错误码，与 HTTP 状态码一一对应
const (
	CodeInvalid     = http.StatusBadRequest
	CodeNotFound    = http.StatusNotFound
	CodeConflict    = http.StatusConflict
	CodeUnavailable = http.StatusServiceUnavailable
	CodeInternal    = http.StatusInternalServerError
)

// Error represents a coded error with stack trace
type Error struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Err     error      `json:"-"` // 原始错误，不序列化
	Stack   string     `json:"stack,omitempty"`
	Context []KeyValue `json:"context,omitempty"`
}

// KeyValue represents a key-value pair for context
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithCode creates a new error with code
func WithCode(code int, message string) *Error {
	return &Error{Code: code, Message: message, Stack: captureStack()}
}

// WithCodef creates a new error with code and formatted message
func WithCodef(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Stack: captureStack()}
}

// Invalid 参数校验失败
func Invalid(message string) *Error { return WithCode(CodeInvalid, message) }

// NotFound 记录不存在
func NotFound(kind, id string) *Error {
	return WithCodef(CodeNotFound, "%s not found", kind).WithContext("id", id)
}

// Wrap wraps an error with message, keeping the inner code
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: GetCode(err), Message: message, Err: err, Stack: captureStack()}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: GetCode(err), Message: fmt.Sprintf(format, args...), Err: err, Stack: captureStack()}
}

// New creates a new error
func New(message string) *Error {
	return &Error{Message: message, Stack: captureStack()}
}

// WithContext 返回附加上下文后的副本，原错误不变
func (e *Error) WithContext(key, value string) *Error {
	if e == nil {
		return nil
	}
	ne := *e
	ne.Context = append(append([]KeyValue(nil), e.Context...), KeyValue{Key: key, Value: value})
	return &ne
}

// captureStack captures the current stack trace
func captureStack() string {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)
	lines := strings.Split(string(buf[:n]), "\n")
	// 去掉 goroutine 头和 captureStack/构造函数两帧
	if len(lines) > 5 {
		lines = lines[5:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// GetCode returns the first code found in the chain, 0 if none
func GetCode(err error) int {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return 0
		}
		if e.Code != 0 {
			return e.Code
		}
		err = e.Err
	}
	return 0
}

// HTTPStatus 错误对应的 HTTP 状态码，未编码的错误按 500 处理
func HTTPStatus(err error) int {
	if code := GetCode(err); code >= 400 && code < 600 {
		return code
	}
	return http.StatusInternalServerError
}

// GetMessage returns the error message
func GetMessage(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Is reports whether err carries the given code anywhere in its chain
func Is(err error, code int) bool {
	return GetCode(err) == code
}

// Format implements fmt.Formatter
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s", e.Error())
			if e.Stack != "" {
				fmt.Fprintf(s, "\n%s", e.Stack)
			}
			return
		}
		fallthrough
	case 's':
		fmt.Fprintf(s, "%s", e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
