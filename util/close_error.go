package util

import (
	"io"

	"github.com/rs/zerolog/log"
)

// Close closes c and hands any close error to the provided handlers. Used on
// response bodies where a close failure is worth noting but never fatal.
func Close(c io.Closer, errorHandlers ...func(error)) {
	if err := c.Close(); err != nil {
		for _, f := range errorHandlers {
			f(err)
		}
	}
}

// CloseLogged closes c and logs any close error at warn level.
func CloseLogged(c io.Closer, msg string) {
	Close(c, func(err error) {
		log.Warn().Err(err).Msg(msg)
	})
}
