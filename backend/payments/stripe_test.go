package payments

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_verify_test"

func signed(payload []byte, secret string) string {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig))
}

func TestVerifyEventValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	event, err := VerifyEvent(payload, signed(payload, testSecret), testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", string(event.Type))
}

func TestVerifyEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	header := signed(payload, testSecret)

	tampered := []byte(`{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	_, err := VerifyEvent(tampered, header, testSecret)
	assert.Error(t, err)
}

func TestVerifyEventRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	_, err := VerifyEvent(payload, signed(payload, "whsec_other"), testSecret)
	assert.Error(t, err)
}

func TestVerifyEventRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	stale := time.Now().Add(-time.Hour)
	sig := webhook.ComputeSignature(stale, payload, testSecret)
	header := fmt.Sprintf("t=%d,v1=%s", stale.Unix(), hex.EncodeToString(sig))

	_, err := VerifyEvent(payload, header, testSecret)
	assert.Error(t, err)
}
