package xerr

import (
	"errors"
	"testing"
)

func TestValidationf(t *testing.T) {
	err := Validationf("日期格式应为 2006-01-02: %q", "2026/08/28")
	if !IsValidation(err) {
		t.Fatalf("expected validation kind: %v", err)
	}
	if err.Error() != `日期格式应为 2006-01-02: "2026/08/28"` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

// 分类标记不能改写底层错误文本
func TestTaggedKeepsCauseText(t *testing.T) {
	cause := errors.New("connection refused")

	err := Transport(cause)
	if !IsTransport(err) || IsTimeout(err) {
		t.Fatalf("wrong classification: %v", err)
	}
	if err.Error() != "connection refused" {
		t.Fatalf("cause text must survive: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("tagged error must still match its cause")
	}

	err = Timeout(cause)
	if !IsTimeout(err) || IsTransport(err) {
		t.Fatalf("wrong classification: %v", err)
	}
}

func TestKindsAreDisjoint(t *testing.T) {
	if IsValidation(ErrStaleSession) || IsStaleSession(ErrValidation) {
		t.Fatal("sentinels must not match each other")
	}
}
