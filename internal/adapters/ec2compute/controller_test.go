package ec2compute

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudfolio/siteops/internal/domain/model"
	"github.com/cloudfolio/siteops/internal/errors"
)

type fakeEC2 struct {
	ec2iface.EC2API
	state       string
	launchTime  *time.Time
	describeErr error
	startErr    error
	stopErr     error
	startCalls  int
	stopCalls   int
}

func (f *fakeEC2) DescribeInstancesWithContext(
	_ aws.Context,
	_ *ec2.DescribeInstancesInput,
	_ ...request.Option,
) (*ec2.DescribeInstancesOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if f.state == "" {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []*ec2.Reservation{{
			Instances: []*ec2.Instance{{
				State:      &ec2.InstanceState{Name: aws.String(f.state)},
				LaunchTime: f.launchTime,
			}},
		}},
	}, nil
}

func (f *fakeEC2) StartInstancesWithContext(
	_ aws.Context,
	_ *ec2.StartInstancesInput,
	_ ...request.Option,
) (*ec2.StartInstancesOutput, error) {
	f.startCalls++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &ec2.StartInstancesOutput{}, nil
}

func (f *fakeEC2) StopInstancesWithContext(
	_ aws.Context,
	_ *ec2.StopInstancesInput,
	_ ...request.Option,
) (*ec2.StopInstancesOutput, error) {
	f.stopCalls++
	if f.stopErr != nil {
		return nil, f.stopErr
	}
	return &ec2.StopInstancesOutput{}, nil
}

func TestStartBootsStoppedInstance(t *testing.T) {
	api := &fakeEC2{state: ec2.InstanceStateNameStopped}
	ctrl := NewController(api, "i-0abc123")

	id, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "i-0abc123", id)
	assert.Equal(t, 1, api.startCalls)
}

func TestStartRunningInstanceIsStateConflict(t *testing.T) {
	api := &fakeEC2{state: ec2.InstanceStateNameRunning}
	ctrl := NewController(api, "i-0abc123")

	_, err := ctrl.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsStateConflict(err))
	assert.Zero(t, api.startCalls, "a running instance must not be restarted")
}

func TestStartTransitionalStates(t *testing.T) {
	for _, state := range []string{ec2.InstanceStateNamePending, ec2.InstanceStateNameStopping} {
		api := &fakeEC2{state: state}
		ctrl := NewController(api, "i-0abc123")

		_, err := ctrl.Start(context.Background())
		assert.True(t, errors.IsValidation(err), "state %s should reject start", state)
	}
}

func TestStatusReportsState(t *testing.T) {
	launched := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	api := &fakeEC2{state: ec2.InstanceStateNameRunning, launchTime: &launched}
	ctrl := NewController(api, "i-0abc123")

	status, err := ctrl.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ComputeStateRunning, status.State)
	assert.Equal(t, "i-0abc123", status.InstanceID)
	require.NotNil(t, status.LaunchedAt)
	assert.Equal(t, launched, *status.LaunchedAt)
}

func TestStatusMissingInstance(t *testing.T) {
	ctrl := NewController(&fakeEC2{}, "i-0abc123")

	_, err := ctrl.Status(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestStatusUnknownInstanceID(t *testing.T) {
	api := &fakeEC2{describeErr: awserr.New(errCodeInstanceNotFound, "no such instance", nil)}
	ctrl := NewController(api, "i-0abc123")

	_, err := ctrl.Status(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestReleaseStopsInstance(t *testing.T) {
	api := &fakeEC2{state: ec2.InstanceStateNameRunning}
	ctrl := NewController(api, "i-0abc123")

	require.NoError(t, ctrl.Release(context.Background()))
	assert.Equal(t, 1, api.stopCalls)
}

func TestReleaseStopErrorSurfaces(t *testing.T) {
	api := &fakeEC2{stopErr: awserr.New("IncorrectInstanceState", "stopping", nil)}
	ctrl := NewController(api, "i-0abc123")

	err := ctrl.Release(context.Background())
	assert.True(t, errors.IsStateConflict(err))
}
