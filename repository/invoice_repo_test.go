package repository

import (
	"testing"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectDuePipeline(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	entry := models.PaymentEntry{Date: at, Amount: 0.2, Method: "Bank", Remark: "second"}

	pipeline := collectDuePipeline(entry, at)
	require.Len(t, pipeline, 2)

	first, err := bson.MarshalExtJSON(pipeline[0], false, false)
	require.NoError(t, err)
	assert.Contains(t, string(first),
		`"payment.paid":{"$round":[{"$add":[{"$ifNull":["$payment.paid",0]},0.2]},2]}`)
	assert.Contains(t, string(first), `"payment.method":{"$literal":"Bank"}`)
	assert.Contains(t, string(first), `"$concatArrays"`)
	assert.Contains(t, string(first), `"remark":"second"`)

	second, err := bson.MarshalExtJSON(pipeline[1], false, false)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"$set":{"payment.due":{"$round":[{"$subtract":[{"$ifNull":["$payment.grandTotal",0]},"$payment.paid"]},2]}}}`,
		string(second))
}
