package timeline

import "errors"

// Düzenleme hataları
var (
	// ErrInvalidRange bitişin başlangıçtan büyük olmadığı aralıklar için döner.
	ErrInvalidRange = errors.New("gecersiz aralik")

	// ErrOutOfBounds silme başlangıcı sanal süreyi aştığında döner.
	ErrOutOfBounds = errors.New("aralik zaman cizelgesi disinda")
)
