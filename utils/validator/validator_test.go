package validatorx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Runs first so the singleton is built under concurrent callers.
func TestValidateVar_ConcurrentInit(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ValidateVar("555-0100", "phone"))
		}()
	}
	wg.Wait()
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		tag     string
		wantTag string
	}{
		{name: "success: email", value: "sincere@april.biz", tag: "required,email"},
		{name: "success: phone with extension punctuation", value: "+1 (770) 736-8031", tag: "phone"},
		{name: "success: negative coordinate", value: "-37.3159", tag: "coordinate"},
		{name: "error: empty required", value: "", tag: "required,email", wantTag: "required"},
		{name: "error: bad email", value: "not-an-email", tag: "required,email", wantTag: "email"},
		{name: "error: phone with letters", value: "call me", tag: "phone", wantTag: "phone"},
		{name: "error: coordinate not a number", value: "north", tag: "coordinate", wantTag: "coordinate"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVar(tt.value, tt.tag)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantTag, FailedTag(err))
		})
	}
}

func TestFailedTag_NotAValidationError(t *testing.T) {
	assert.Equal(t, "", FailedTag(nil))
	assert.Equal(t, "", FailedTag(assert.AnError))
}
