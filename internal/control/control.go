// Package control triggers runs and edits the UID and coupon lists on the
// backend.
package control

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/logging"
)

type Kind int

const (
	KindRun Kind = iota
	KindForceRun
)

func (k Kind) String() string {
	if k == KindForceRun {
		return "force-run"
	}
	return "run"
}

var (
	ErrNoUIDs    = errors.New("Please select at least one UID to run.")
	ErrNoCoupons = errors.New("Please select at least one Coupon to apply for a normal run.")
)

const (
	msgRunFailed          = "An error occurred while starting the process."
	msgSaveFailed         = "An error occurred while saving."
	msgDeleteCouponFailed = "An error occurred while deleting the coupon."
	msgDeleteUIDFailed    = "An error occurred while deleting the UID."

	WarnForceRunNoCoupons = "Force run started without coupons."
)

// Next is where the caller should go after an action completes.
type Next int

const (
	NextStay Next = iota
	NextMonitoring
	NextReload
)

// Outcome is what an action reports back to the operator. Message is always
// shown. Warning is shown in addition when set.
type Outcome struct {
	Message string
	Warning string
	Next    Next
	OK      bool
}

// API is the subset of the backend client the controller calls.
type API interface {
	Run(ctx context.Context, req api.RunRequest) (api.Result, error)
	ForceRun(ctx context.Context, req api.RunRequest) (api.Result, error)
	SaveUIDs(ctx context.Context, content string) (api.Result, error)
	SaveCoupons(ctx context.Context, content string) (api.Result, error)
	DeleteCoupon(ctx context.Context, name string) (api.Result, error)
	DeleteUID(ctx context.Context, uid string) (api.Result, error)
}

type Controller struct {
	API API

	// Fs and the two paths locate the local copy of the lists. A successful
	// save is mirrored there. Empty paths disable mirroring.
	Fs          afero.Fs
	UIDsFile    string
	CouponsFile string

	Logger logrus.FieldLogger
}

func (c *Controller) log() *logrus.Entry {
	return logging.Component(c.Logger, "control")
}

// Validate checks a run request before anything is sent.
func Validate(kind Kind, uids, coupons []string) error {
	if len(uids) == 0 {
		return ErrNoUIDs
	}
	if kind == KindRun && len(coupons) == 0 {
		return ErrNoCoupons
	}
	return nil
}

// Trigger starts a run. A validation failure is returned as an error and no
// request is made.
func (c *Controller) Trigger(ctx context.Context, kind Kind, uids, coupons []string) (Outcome, error) {
	if err := Validate(kind, uids, coupons); err != nil {
		return Outcome{}, err
	}

	req := api.RunRequest{UIDs: uids, Coupons: coupons}
	call := c.API.Run
	if kind == KindForceRun {
		call = c.API.ForceRun
	}

	c.log().WithFields(logrus.Fields{
		"kind":    kind.String(),
		"uids":    len(uids),
		"coupons": len(coupons),
	}).Info("triggering run")

	res, err := call(ctx, req)
	if err != nil {
		c.log().WithError(err).WithField("kind", kind.String()).Error("run request failed")
		return Outcome{Message: msgRunFailed}, nil
	}

	out := Outcome{Message: res.Message, OK: res.OK()}
	if out.OK {
		out.Next = NextMonitoring
		if kind == KindForceRun && len(coupons) == 0 {
			out.Warning = WarnForceRunNoCoupons
		}
	}
	return out, nil
}

func (c *Controller) SaveUIDs(ctx context.Context, content string) Outcome {
	return c.save(ctx, "uids", c.API.SaveUIDs, c.UIDsFile, content)
}

func (c *Controller) SaveCoupons(ctx context.Context, content string) Outcome {
	return c.save(ctx, "coupons", c.API.SaveCoupons, c.CouponsFile, content)
}

func (c *Controller) save(ctx context.Context, list string, call func(context.Context, string) (api.Result, error), path, content string) Outcome {
	log := c.log().WithField("list", list)

	res, err := call(ctx, content)
	if err != nil {
		log.WithError(err).Error("save failed")
		return Outcome{Message: msgSaveFailed}
	}
	if !res.OK() {
		return Outcome{Message: res.Message}
	}

	if path != "" && c.Fs != nil {
		if err := catalog.WriteRaw(c.Fs, path, content); err != nil {
			log.WithError(err).Warn("saved on server but could not update local copy")
		}
	}
	log.Info("saved")
	return Outcome{Message: res.Message, Next: NextReload, OK: true}
}

func (c *Controller) DeleteCoupon(ctx context.Context, name string) Outcome {
	out := c.remove(ctx, "coupon", name, c.API.DeleteCoupon, msgDeleteCouponFailed)
	if out.OK {
		c.mirrorDelete(c.CouponsFile, func(raw string) (string, bool) { return catalog.WithoutCoupon(raw, name) })
	}
	return out
}

// DeleteUID removes uid, the bare account id, not the run key.
func (c *Controller) DeleteUID(ctx context.Context, uid string) Outcome {
	out := c.remove(ctx, "uid", uid, c.API.DeleteUID, msgDeleteUIDFailed)
	if out.OK {
		c.mirrorDelete(c.UIDsFile, func(raw string) (string, bool) { return catalog.WithoutUID(raw, uid) })
	}
	return out
}

// mirrorDelete applies a successful server-side delete to the local copy.
func (c *Controller) mirrorDelete(path string, edit func(string) (string, bool)) {
	if path == "" || c.Fs == nil {
		return
	}
	log := c.log().WithField("path", path)

	data, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		log.WithError(err).Debug("no local copy to update")
		return
	}
	updated, changed := edit(string(data))
	if !changed {
		return
	}
	if err := catalog.WriteRaw(c.Fs, path, updated); err != nil {
		log.WithError(err).Warn("deleted on server but could not update local copy")
	}
}

func (c *Controller) remove(ctx context.Context, what, value string, call func(context.Context, string) (api.Result, error), failMsg string) Outcome {
	log := c.log().WithField(what, value)

	res, err := call(ctx, value)
	if err != nil {
		log.WithError(err).Error("delete failed")
		return Outcome{Message: failMsg}
	}
	if !res.OK() {
		return Outcome{Message: res.Message}
	}
	log.Info("deleted")
	return Outcome{Message: res.Message, Next: NextReload, OK: true}
}

// ConfirmDeleteCoupon is the prompt shown before deleting a coupon.
func ConfirmDeleteCoupon(name string) string {
	return fmt.Sprintf("Are you sure you want to delete the coupon \"%s\"?", name)
}

func ConfirmDeleteUID(uid string) string {
	return fmt.Sprintf("Are you sure you want to delete the UID \"%s\"?", uid)
}
