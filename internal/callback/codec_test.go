package callback

import (
	"strings"
	"testing"

	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	codec := Telegram()
	tests := []struct {
		name  string
		id    string
		value string
	}{
		{"id only", "approve", ""},
		{"id and value", "approve", "req-42"},
		{"html characters", "cmp", "a<b&c>"},
		{"quotes and colons", "say", `"x":y`},
		{"unicode", "vote", "👍"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := codec.Encode(test.id, test.value)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(token) > TelegramLimit {
				t.Fatalf("token is %d bytes", len(token))
			}
			got := codec.DecodeString(token)
			want := models.Action{ID: test.id, Value: test.value}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestEncode_Format(t *testing.T) {
	token, err := Telegram().Encode("approve", "1")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := `chat:{"a":"approve","v":"1"}`; token != want {
		t.Errorf("token = %q, want %q", token, want)
	}

	token, err = Telegram().Encode("approve", "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := `chat:{"a":"approve"}`; token != want {
		t.Errorf("token = %q, want %q", token, want)
	}
}

func TestEncode_TooLong(t *testing.T) {
	_, err := Telegram().Encode(strings.Repeat("a", 200), "")
	if err == nil {
		t.Fatal("expected error for oversized action id")
	}
	if !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	adapterErr, _ := chaterr.As(err)
	if adapterErr.Platform != "telegram" {
		t.Errorf("Platform = %q", adapterErr.Platform)
	}
}

func TestEncode_ValuePushesOverLimit(t *testing.T) {
	// `chat:{"a":"x","v":""}` overhead is 21 bytes.
	if _, err := Telegram().Encode("x", strings.Repeat("v", 43)); err != nil {
		t.Errorf("64-byte token should fit: %v", err)
	}
	if _, err := Telegram().Encode("x", strings.Repeat("v", 44)); !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("65-byte token should fail validation, got %v", err)
	}
}

func TestEncode_LimitIsPerCodec(t *testing.T) {
	id := strings.Repeat("a", 70)
	if _, err := Telegram().Encode(id, ""); err == nil {
		t.Error("telegram codec should reject")
	}
	if _, err := Discord().Encode(id, ""); err != nil {
		t.Errorf("discord codec should accept: %v", err)
	}
	if _, err := (Codec{Platform: "test"}).Encode(strings.Repeat("a", 5000), ""); err != nil {
		t.Errorf("zero limit means unlimited: %v", err)
	}
}

func TestEncode_EmptyID(t *testing.T) {
	if _, err := Telegram().Encode("", "v"); !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEncode_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		value string
	}{
		{"id", "a\xffb", ""},
		{"value", "approve", "ok\xc3"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := Telegram().Encode(test.id, test.value)
			if !chaterr.IsKind(err, chaterr.KindValidation) {
				t.Errorf("Encode(%q, %q) = %q, %v; want validation error", test.id, test.value, token, err)
			}
		})
	}
}

func TestDecode_Absent(t *testing.T) {
	got := Telegram().Decode(nil)
	if got.ID != "telegram_callback" || got.Value != "" {
		t.Errorf("got %+v", got)
	}
}

func TestDecode_Fallback(t *testing.T) {
	codec := Telegram()
	inputs := []string{
		"chat:{not-json",
		"legacy_action",
		`chat:{"v":"no id"}`,
		`chat:{"a":""}`,
		`chat:[1,2]`,
		"chat:",
		"",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := codec.DecodeString(input)
			want := models.Action{ID: input, Value: input}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestDecode_PointerForm(t *testing.T) {
	data := `chat:{"a":"ok","v":"1"}`
	got := Telegram().Decode(&data)
	if got.ID != "ok" || got.Value != "1" {
		t.Errorf("got %+v", got)
	}
}
