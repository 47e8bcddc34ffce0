package campaign_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailblast/pkg/campaign"
	"github.com/dmitrymomot/mailblast/pkg/mailer"
	"github.com/dmitrymomot/mailblast/pkg/placeholder"
	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

// MockTransport is a mock implementation of mailer.Transport.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Open(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransport) Send(ctx context.Context, email *mailer.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockTransport) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testRecipients(n int) []recipients.Record {
	recs := make([]recipients.Record, 0, n)
	names := []string{"Ann", "Bob", "Cleo", "Dan", "Eve"}
	emails := []string{"ann@example.com", "bob@example.com", "cleo@example.com", "dan@example.com", "eve@example.com"}
	for i := range n {
		recs = append(recs, recipients.Record{Name: names[i], Email: emails[i], Company: "Acme"})
	}
	return recs
}

func TestRun_AllDeliveriesSucceed(t *testing.T) {
	t.Parallel()

	transport := &MockTransport{}
	transport.On("Open", mock.Anything).Return(nil).Once()
	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Times(3)
	transport.On("Close").Return(nil).Once()

	var progress []int
	report, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		From:       "sender@example.com",
		Template:   campaign.Template{Subject: "Hello {name}", Body: "Hi {name} from {company}"},
		Recipients: testRecipients(3),
	}, campaign.WithProgress(func(done, total int) {
		require.Equal(t, 3, total)
		progress = append(progress, done)
	}))

	require.NoError(t, err)
	require.Equal(t, 3, report.Attempted)
	require.Equal(t, 3, report.Sent)
	require.Zero(t, report.Failed)
	require.Len(t, report.Outcomes, 3)
	require.Equal(t, []int{1, 2, 3}, progress)
	require.NotEqual(t, report.PassID.String(), "00000000-0000-0000-0000-000000000000")
	transport.AssertExpectations(t)
}

func TestRun_DeliveryFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	recs := testRecipients(5)
	deliveryErr := errors.Join(mailer.ErrSendFailed, errors.New("mailbox unavailable"))

	transport := &MockTransport{}
	transport.On("Open", mock.Anything).Return(nil).Once()
	transport.On("Send", mock.Anything, mock.MatchedBy(func(email *mailer.Email) bool {
		return email.To[0] == mailer.Recipient(recs[2].Name, recs[2].Email)
	})).Return(deliveryErr).Once()
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)
	transport.On("Close").Return(nil).Once()

	var last int
	report, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Hi", Body: "Hi {name}"},
		Recipients: recs,
	}, campaign.WithProgress(func(done, _ int) { last = done }))

	require.NoError(t, err, "per-recipient failure must not fail the pass")
	require.Equal(t, 5, report.Attempted)
	require.Equal(t, 4, report.Sent)
	require.Equal(t, 1, report.Failed)
	require.Equal(t, 5, last, "progress reaches 100%")

	require.Len(t, report.Outcomes, 5)
	for i, outcome := range report.Outcomes {
		require.Equal(t, recs[i], outcome.Recipient, "outcome order follows recipient order")
		if i == 2 {
			require.ErrorIs(t, outcome.Err, mailer.ErrSendFailed)
		} else {
			require.True(t, outcome.OK())
		}
	}
	transport.AssertExpectations(t)
}

func TestRun_AuthFailureAbortsBeforeAnySend(t *testing.T) {
	t.Parallel()

	authErr := errors.Join(mailer.ErrAuthFailed, errors.New("535 5.7.8 bad credentials"))

	transport := &MockTransport{}
	transport.On("Open", mock.Anything).Return(authErr).Once()

	report, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Hi", Body: "Hi {name}"},
		Recipients: testRecipients(3),
	})

	require.ErrorIs(t, err, mailer.ErrAuthFailed)
	require.Zero(t, report.Attempted)
	require.Empty(t, report.Outcomes, "zero delivery outcomes recorded")
	transport.AssertNotCalled(t, "Send")
	transport.AssertNotCalled(t, "Close")
}

func TestRun_BadTemplateAbortsBeforeSession(t *testing.T) {
	t.Parallel()

	transport := &MockTransport{}

	report, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Hi", Body: "Hi {nickname}"},
		Recipients: testRecipients(3),
	})

	require.ErrorIs(t, err, placeholder.ErrUnknownPlaceholder)
	require.Zero(t, report.Attempted)
	transport.AssertNotCalled(t, "Open")
	transport.AssertNotCalled(t, "Send")
}

func TestRun_BadSubjectTemplateAborts(t *testing.T) {
	t.Parallel()

	transport := &MockTransport{}

	_, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Your {discount}", Body: "Hi {name}"},
		Recipients: testRecipients(1),
	})

	require.ErrorIs(t, err, placeholder.ErrUnknownPlaceholder)
	transport.AssertNotCalled(t, "Open")
}

func TestRun_NoRecipients(t *testing.T) {
	t.Parallel()

	transport := &MockTransport{}

	report, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template: campaign.Template{Subject: "Hi", Body: "Hello"},
	})

	require.NoError(t, err)
	require.Zero(t, report.Attempted)
	transport.AssertNotCalled(t, "Open")
}

func TestRun_ContextCancellationAbortsRemainingPass(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	transport := &MockTransport{}
	transport.On("Open", mock.Anything).Return(nil).Once()
	transport.On("Send", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		cancel() // cancel after the first delivery
	}).Return(nil).Once()
	transport.On("Close").Return(nil).Once()

	report, err := campaign.Run(ctx, transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Hi", Body: "Hi {name}"},
		Recipients: testRecipients(5),
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, report.Attempted, "partial report is returned")
	transport.AssertExpectations(t)
}

func TestRun_SessionClosedOnSuccess(t *testing.T) {
	t.Parallel()

	transport := &MockTransport{}
	transport.On("Open", mock.Anything).Return(nil).Once()
	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	transport.On("Close").Return(nil).Once()

	_, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Hi", Body: "Hi"},
		Recipients: testRecipients(1),
	})

	require.NoError(t, err)
	transport.AssertExpectations(t)
}

func TestRun_EmailsCarryPassTag(t *testing.T) {
	t.Parallel()

	var sent *mailer.Email
	transport := &MockTransport{}
	transport.On("Open", mock.Anything).Return(nil).Once()
	transport.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*mailer.Email)
	}).Return(nil).Once()
	transport.On("Close").Return(nil).Once()

	report, err := campaign.Run(context.Background(), transport, campaign.Campaign{
		Template:   campaign.Template{Subject: "Hi", Body: "Hi"},
		Recipients: testRecipients(1),
	})

	require.NoError(t, err)
	require.NotNil(t, sent)
	require.Equal(t, report.PassID.String(), sent.Tags["pass"])
}
