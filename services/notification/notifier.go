package notification

import (
	"context"
	"time"

	"github.com/jvoverseas/intake_backend/services/mailer"
	"github.com/labstack/gommon/log"
)

// Mailer is the delivery side the notifier needs.
type Mailer interface {
	Deliver(ctx context.Context, msg *mailer.Message) (*mailer.Receipt, error)
	HasLogo() bool
}

// Notifier renders emails and hands them to the dispatcher. None of its
// methods wait for delivery.
type Notifier struct {
	templater  *Templater
	dispatcher *Dispatcher
	mailer     Mailer
	logger     *log.Logger
}

func NewNotifier(t *Templater, d *Dispatcher, m Mailer) *Notifier {
	return &Notifier{templater: t, dispatcher: d, mailer: m, logger: log.New("notify")}
}

// SendEligibilityResult queues the eligibility outcome email.
func (n *Notifier) SendEligibilityResult(to, name string, isEligible bool, estimatedRange string) {
	e := EligibilityEmail{Name: name, IsEligible: isEligible, EstimatedRange: estimatedRange}
	n.queue("eligibility email to "+to, to, SubjectEligibility, func(hasLogo bool) (string, error) {
		return n.templater.RenderEligibilityResult(e, hasLogo)
	})
}

// SendEnquiryConfirmation queues the enquiry acknowledgement.
func (n *Notifier) SendEnquiryConfirmation(to, name, enquiryType string, details map[string]string) {
	e := EnquiryEmail{Name: name, EnquiryType: enquiryType, Details: details}
	n.queue("confirmation email to "+to, to, SubjectEnquiry(enquiryType), func(hasLogo bool) (string, error) {
		return n.templater.RenderEnquiryConfirmation(e, hasLogo)
	})
}

// SendLoginOTP queues the admin second-factor code.
func (n *Notifier) SendLoginOTP(to, otp string, ttl time.Duration) {
	n.queue("otp email to "+to, to, SubjectLoginOTP, func(hasLogo bool) (string, error) {
		return n.templater.RenderLoginOTP(otp, ttl, hasLogo)
	})
}

func (n *Notifier) queue(name, to, subject string, render func(hasLogo bool) (string, error)) {
	hasLogo := n.mailer.HasLogo()

	html, err := render(hasLogo)
	if err != nil {
		n.logger.Errorf("render %s: %v", name, err)
		return
	}
	msg := &mailer.Message{To: to, Subject: subject, HTML: html}
	if hasLogo {
		if msg.AltHTML, err = render(false); err != nil {
			n.logger.Errorf("render %s: %v", name, err)
			return
		}
	}

	n.dispatcher.Dispatch(name, func(ctx context.Context) error {
		receipt, err := n.mailer.Deliver(ctx, msg)
		if err != nil {
			return err
		}
		n.logger.Infof("%s sent via %s", name, receipt.Provider)
		return nil
	})
}
