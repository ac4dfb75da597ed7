package filesystem

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// flexString accepts a JSON string or number and always encodes as a string.
type flexString string

func (s *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*s = ""
		return nil
	}
	if raw[0] == '"' {
		var v string
		if err := sonic.Unmarshal(raw, &v); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(v))
		return nil
	}
	*s = flexString(string(raw))
	return nil
}

// flexInt is a nullable integer stored as a JSON string ("112"), number, or null.
type flexInt struct {
	value *int
}

func newFlexInt(v *int) flexInt {
	if v == nil {
		return flexInt{}
	}
	n := *v
	return flexInt{value: &n}
}

func (f flexInt) Ptr() *int {
	return f.value
}

func (f flexInt) Int() int {
	if f.value == nil {
		return 0
	}
	return *f.value
}

func (f flexInt) MarshalJSON() ([]byte, error) {
	if f.value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(strconv.Itoa(*f.value))), nil
}

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		f.value = nil
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := sonic.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			f.value = nil
			return nil
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("invalid integer %q", text)
	}
	f.value = &n
	return nil
}
