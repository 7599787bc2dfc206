package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики жизненного цикла объявлений и ставок.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (оборачивают ошибки нижних слоев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error, domain string) *AppError {
	return Wrap(err, CodeNotFound, domain, "Resource not found", http.StatusNotFound)
}

// ErrDuplicate - фабрика для ошибки "уже существует" (409)
func ErrDuplicate(err error, domain, message string) *AppError {
	return Wrap(err, CodeDuplicate, domain, message, http.StatusConflict)
}

// ErrConcurrentModification - оптимистическая блокировка не прошла (409).
// Вызывающий должен перечитать состояние и повторить операцию.
func ErrConcurrentModification(domain string) *AppError {
	return New(CodeConflict, domain, "Entity was modified concurrently, retry with fresh state", http.StatusConflict)
}

// ErrInvalidState - операция невозможна в текущем статусе сущности (409)
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidState, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (частые, статичные ошибки)
// =========================================================================

// ErrInsufficientPermissions - действие не разрешено этой роли/пользователю
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Postings ---

var ErrPostingNotFound = New(
	CodeNotFound,
	"posting",
	"Posting not found",
	http.StatusNotFound,
)

// ErrPostingNotOpen - объявление уже не принимает ставки
var ErrPostingNotOpen = New(
	CodeInvalidState,
	"posting",
	"Posting is not open for bids",
	http.StatusConflict,
)

// ErrPostingNotInProgress - операция допустима только для объявления в работе
var ErrPostingNotInProgress = New(
	CodeInvalidState,
	"posting",
	"Posting is not in progress",
	http.StatusConflict,
)

// ErrPostingNotCompleted - отзыв возможен только после завершения работ
var ErrPostingNotCompleted = New(
	CodeInvalidState,
	"posting",
	"Posting is not completed",
	http.StatusConflict,
)

// ErrCompletionNotConfirmed - подрядчик еще не подтвердил выполнение
var ErrCompletionNotConfirmed = New(
	CodeInvalidState,
	"posting",
	"Completion has not been confirmed by the awarded company",
	http.StatusConflict,
)

// --- Bids ---

var ErrBidNotFound = New(
	CodeNotFound,
	"bid",
	"Bid not found",
	http.StatusNotFound,
)

// ErrBidNotPending - ставка уже в терминальном статусе
var ErrBidNotPending = New(
	CodeInvalidState,
	"bid",
	"Bid is not pending",
	http.StatusConflict,
)

// ErrBidNotAccepted - операция допустима только для выигравшей ставки
var ErrBidNotAccepted = New(
	CodeInvalidState,
	"bid",
	"Bid is not the accepted bid of this posting",
	http.StatusConflict,
)

// ErrOwnPostingBid - владелец не может ставить на собственное объявление
var ErrOwnPostingBid = New(
	CodeInvalidState,
	"bid",
	"Cannot bid on your own posting",
	http.StatusConflict,
)

// ErrDuplicateBid - у подрядчика уже есть ставка на это объявление
var ErrDuplicateBid = New(
	CodeDuplicate,
	"bid",
	"You already have a bid on this posting",
	http.StatusConflict,
)

// --- Reviews ---

var ErrReviewNotFound = New(
	CodeNotFound,
	"review",
	"Review not found",
	http.StatusNotFound,
)

// ErrDuplicateReview - повторная отправка отзыва отклоняется, не дублируется
var ErrDuplicateReview = New(
	CodeDuplicate,
	"review",
	"Review for this posting already exists",
	http.StatusConflict,
)

// --- Auth & Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeDuplicate,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)
