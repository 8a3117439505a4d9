package capacity

import "errors"

// ErrCountFailed возвращается, когда хранилище не смогло посчитать записи
var ErrCountFailed = errors.New("capacity: failed to count appointments")
