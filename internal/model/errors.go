package model

import "errors"

// ErrConfiguration ошибка настройки движка. Возникает только при старте
var ErrConfiguration = errors.New("configuration error")
