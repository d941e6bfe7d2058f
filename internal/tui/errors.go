// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
)

func humanizeAdapterError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrNetwork):
		return "Отсутствует сеть или Сервер недоступен"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Сессия истекла, войдите заново"
	case errors.Is(err, adapter.ErrServer):
		return "Ошибка на стороне сервера, попробуйте позже"
	}

	return err.Error()
}
