package kernel_test

import (
	"testing"

	"grocery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownUUID = "7f9c24e5-2a31-4bfa-8d6e-1c0f53a9b402"

func TestNewUUID(t *testing.T) {
	t.Run("should produce a valid non-zero UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should not repeat across calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			id := kernel.NewUUID()
			assert.False(t, seen[id.String()])
			seen[id.String()] = true
		}
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(knownUUID)

		require.NoError(t, err)
		assert.Equal(t, knownUUID, id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should normalize alternate encodings", func(t *testing.T) {
		variants := []string{
			"{7f9c24e5-2a31-4bfa-8d6e-1c0f53a9b402}",
			"urn:uuid:7f9c24e5-2a31-4bfa-8d6e-1c0f53a9b402",
			"7f9c24e52a314bfa8d6e1c0f53a9b402",
		}

		for _, variant := range variants {
			id, err := kernel.UUIDFromString(variant)

			require.NoError(t, err, "variant: %s", variant)
			assert.Equal(t, knownUUID, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		malformed := []string{
			"",
			"order-123",
			"7f9c24e5-2a31-4bfa-8d6e",
			"7f9c24e5-2a31-4bfa-8d6e-1c0f53a9b402-tail",
			"zz9c24e5-2a31-4bfa-8d6e-1c0f53a9b402",
		}

		for _, input := range malformed {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, "input: %q", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round-trip through raw bytes", func(t *testing.T) {
		source := kernel.NewUUID()

		raw := source.Bytes()
		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(source))
	})

	t.Run("should reject short byte slices", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x7f, 0x9c, 0x24})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_String(t *testing.T) {
	id := kernel.NewUUID()

	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	assert.Equal(t, id.String(), id.String())
}

func TestUUID_Bytes(t *testing.T) {
	id, err := kernel.UUIDFromString(knownUUID)
	require.NoError(t, err)

	raw := id.Bytes()

	assert.IsType(t, uuid.UUID{}, raw)
	assert.Equal(t, knownUUID, raw.String())
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("same value compares equal", func(t *testing.T) {
		a, _ := kernel.UUIDFromString(knownUUID)
		b, _ := kernel.UUIDFromString(knownUUID)

		assert.True(t, a.IsEqual(b))
		assert.True(t, b.IsEqual(a))
	})

	t.Run("different values compare unequal", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		assert.False(t, a.IsEqual(b))
	})

	t.Run("zero values compare equal to each other only", func(t *testing.T) {
		var a, b kernel.UUID

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("constructed UUID is valid", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID

		assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("explicit nil UUID fails validation", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_AsIdentifierField(t *testing.T) {
	type orderRef struct {
		ID kernel.UUID
	}

	t.Run("initialized field validates", func(t *testing.T) {
		ref := orderRef{ID: kernel.NewUUID()}

		assert.NoError(t, ref.ID.Validate())
	})

	t.Run("uninitialized field is caught", func(t *testing.T) {
		var ref orderRef

		assert.Error(t, ref.ID.Validate())
	})
}

func TestUUID_BytesCopyIsIndependent(t *testing.T) {
	original := kernel.NewUUID()
	want := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, want, original.String())
	assert.NoError(t, original.Validate())
}
