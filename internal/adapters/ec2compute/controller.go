// Package ec2compute manages the EC2 instance that hosts the renewal job.
package ec2compute

import (
	"context"
	stderrors "errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
)

const errCodeInstanceNotFound = "InvalidInstanceID.NotFound"

// Controller starts, inspects, and stops the renewal instance.
type Controller struct {
	ec2        ec2iface.EC2API
	instanceID string
}

// NewController creates a Controller for the given instance.
func NewController(api ec2iface.EC2API, instanceID string) *Controller {
	return &Controller{ec2: api, instanceID: instanceID}
}

// Start boots the renewal instance. An instance that is already running
// returns a state_conflict error: a renewal is likely in progress and the
// duplicate trigger should be treated as a success-equivalent no-op by the
// caller, not a failure.
func (c *Controller) Start(ctx context.Context) (string, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return "", err
	}

	switch status.State {
	case model.ComputeStateRunning:
		return "", errors.StateConflict("renewal instance already running")
	case model.ComputeStatePending, model.ComputeStateStopping:
		return "", errors.Validationf("instance is %s, please wait", status.State)
	case model.ComputeStateStopped:
		// startable
	default:
		return "", errors.Validationf("instance in %s state cannot be started", status.State)
	}

	if _, err := c.ec2.StartInstancesWithContext(ctx, &ec2.StartInstancesInput{
		InstanceIds: []*string{aws.String(c.instanceID)},
	}); err != nil {
		return "", mapEC2Err(err, "start instance "+c.instanceID)
	}
	return c.instanceID, nil
}

// Status reports the instance's current lifecycle state.
func (c *Controller) Status(ctx context.Context) (*model.ComputeStatus, error) {
	out, err := c.ec2.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []*string{aws.String(c.instanceID)},
	})
	if err != nil {
		return nil, mapEC2Err(err, "describe instance "+c.instanceID)
	}

	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		return nil, errors.NotFoundf("renewal instance %s not found", c.instanceID)
	}

	inst := out.Reservations[0].Instances[0]
	status := &model.ComputeStatus{
		InstanceID: c.instanceID,
		State:      model.ComputeState(aws.StringValue(inst.State.Name)),
	}
	if inst.LaunchTime != nil {
		status.LaunchedAt = inst.LaunchTime
	}
	return status, nil
}

// Release shuts the instance down. StopInstances on an already-stopped
// instance is a no-op on the AWS side, so Release is safe to call
// unconditionally at the end of every invocation.
func (c *Controller) Release(ctx context.Context) error {
	if _, err := c.ec2.StopInstancesWithContext(ctx, &ec2.StopInstancesInput{
		InstanceIds: []*string{aws.String(c.instanceID)},
	}); err != nil {
		return mapEC2Err(err, "stop instance "+c.instanceID)
	}
	return nil
}

func mapEC2Err(err error, msg string) error {
	var aerr awserr.Error
	if stderrors.As(err, &aerr) {
		switch aerr.Code() {
		case errCodeInstanceNotFound:
			return errors.Wrap(err, errors.ErrCodeNotFound, msg)
		case "IncorrectInstanceState":
			return errors.Wrap(err, errors.ErrCodeStateConflict, msg)
		}
	}
	return errors.Wrap(err, errors.ErrCodeInternal, msg)
}
