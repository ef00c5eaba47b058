package threadid

import (
	"testing"

	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

func TestRoundTrip(t *testing.T) {
	codec := GoogleChat()
	tests := []struct {
		name   string
		thread models.Thread
	}{
		{"space only", models.Thread{SpaceName: "spaces/ABC123"}},
		{"dm space", models.Thread{SpaceName: "spaces/DM123", IsDM: true}},
		{"thread", models.Thread{SpaceName: "spaces/ABC123", ThreadName: "spaces/ABC123/threads/xyz"}},
		{"thread and dm", models.Thread{SpaceName: "spaces/DM1", ThreadName: "spaces/DM1/threads/q", IsDM: true}},
		{"thread with colons", models.Thread{SpaceName: "spaces/A", ThreadName: "a:b:dm"}},
		{"thread named dm", models.Thread{SpaceName: "spaces/A", ThreadName: "dm"}},
		{"binary thread", models.Thread{SpaceName: "spaces/A", ThreadName: "\x00\xff/+"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := codec.Encode(test.thread)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := codec.Decode(token)
			if err != nil {
				t.Fatalf("Decode(%q): %v", token, err)
			}
			if got != test.thread {
				t.Errorf("Decode(%q) = %+v, want %+v", token, got, test.thread)
			}
			if codec.IsDMThread(token) != test.thread.IsDM {
				t.Errorf("IsDMThread(%q) = %v", token, !test.thread.IsDM)
			}
		})
	}
}

func TestEncode_Format(t *testing.T) {
	codec := GoogleChat()
	tests := []struct {
		thread models.Thread
		want   string
	}{
		{models.Thread{SpaceName: "spaces/ABC123"}, "gchat:spaces/ABC123"},
		{models.Thread{SpaceName: "spaces/DM123", IsDM: true}, "gchat:spaces/DM123:dm"},
		{models.Thread{SpaceName: "spaces/A", ThreadName: "t/1"}, "gchat:spaces/A:dC8x"},
		{models.Thread{SpaceName: "spaces/A", ThreadName: "t/1", IsDM: true}, "gchat:spaces/A:dC8x:dm"},
	}
	for _, test := range tests {
		got, err := codec.Encode(test.thread)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", test.thread, err)
		}
		if got != test.want {
			t.Errorf("Encode(%+v) = %q, want %q", test.thread, got, test.want)
		}
	}
}

func TestEncode_Invalid(t *testing.T) {
	codec := GoogleChat()
	inputs := []models.Thread{
		{},
		{ThreadName: "t"},
		{SpaceName: "spaces:A"},
	}
	for _, input := range inputs {
		if _, err := codec.Encode(input); !chaterr.IsKind(err, chaterr.KindValidation) {
			t.Errorf("Encode(%+v) = %v, want validation error", input, err)
		}
	}
}

func TestDecode_DMMarker(t *testing.T) {
	codec := GoogleChat()

	thread, err := codec.Decode("gchat:spaces/DM123:dm")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !thread.IsDM || thread.SpaceName != "spaces/DM123" || thread.ThreadName != "" {
		t.Errorf("got %+v", thread)
	}

	thread, err = codec.Decode("gchat:spaces/ABC123")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if thread.IsDM || thread.SpaceName != "spaces/ABC123" {
		t.Errorf("got %+v", thread)
	}
}

func TestDecode_Errors(t *testing.T) {
	codec := GoogleChat()
	inputs := []string{
		"invalid",
		"otherprefix:X:Y",
		"",
		"gchat",
		"gchat:",
		"gchat::dm",
		"gchat:spaces/A:!!!",
		"gchat:spaces/A:dn",
		"gchat:spaces/A:dC8x:extra:dm",
		"gchat:dm:spaces/ABC",
		"telegram:chats/1",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := codec.Decode(input)
			if !chaterr.IsKind(err, chaterr.KindDecoding) {
				t.Errorf("Decode(%q) = %v, want decoding error", input, err)
			}
		})
	}
}

func TestIsDMThread(t *testing.T) {
	codec := GoogleChat()
	tests := []struct {
		token string
		want  bool
	}{
		{"gchat:spaces/DM123:dm", true},
		{"gchat:spaces/ABC123", false},
		{"gchat:dm:spaces/ABC", false},
		{"gchat:spaces/A:!!!:dm", true},
		{"gchat:dm", false},
		{"otherprefix:X:dm", false},
		{"invalid", false},
		{"", false},
	}
	for _, test := range tests {
		if got := codec.IsDMThread(test.token); got != test.want {
			t.Errorf("IsDMThread(%q) = %v, want %v", test.token, got, test.want)
		}
	}
}

func TestTelegramCodec(t *testing.T) {
	codec := Telegram()
	token, err := codec.Encode(models.Thread{SpaceName: "chats/-100123", ThreadName: "42"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if token != "telegram:chats/-100123:NDI" {
		t.Errorf("token = %q", token)
	}
	if _, err := GoogleChat().Decode(token); !chaterr.IsKind(err, chaterr.KindDecoding) {
		t.Errorf("gchat codec accepted a telegram token: %v", err)
	}
}
