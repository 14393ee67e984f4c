package leaverequest_test

import (
	"reflect"
	"testing"

	"github.com/businessregulatoryreviewagency/brra/internal/leaverequest"

	"github.com/stretchr/testify/assert"
)

// The period uniqueness constraint must only cover in-flight requests.
// Rejection is terminal and the record is never erased, so resubmitting the
// same date range has to be possible; a full index over
// (requester_id, start_date, end_date) would block it forever.
func TestLeaveRequestPeriodIndexIsPartial(t *testing.T) {
	f, ok := reflect.TypeOf(leaverequest.LeaveRequest{}).FieldByName("RequesterID")
	assert.True(t, ok)

	tag := f.Tag.Get("gorm")
	assert.Contains(t, tag, "uniqueIndex:uq_leave_requests_period")
	assert.Contains(t, tag, "where:status LIKE 'Pending%'")

	for _, name := range []string{"StartDate", "EndDate"} {
		f, ok := reflect.TypeOf(leaverequest.LeaveRequest{}).FieldByName(name)
		assert.True(t, ok)
		assert.Contains(t, f.Tag.Get("gorm"), "uniqueIndex:uq_leave_requests_period")
	}
}
