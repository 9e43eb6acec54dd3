package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

func TestSetMarginRuleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetMarginRuleCommand(kernel.NewUUID(), kernel.NewUUID(),
		kernel.ServiceTypeFreight, decimal.NewFromInt(18))
	require.NoError(t, err)

	repo := new(MockMarginRuleRepository)
	uow := new(MockMarginUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MarginRuleRepository").Return(repo).Once(),
		repo.On("Upsert", ctx, mock.AnythingOfType("*margin.Rule")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMarginUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetMarginRuleCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetMarginRuleCommandHandler_Handle_PercentOutOfBounds(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetMarginRuleCommand(kernel.NewUUID(), kernel.NewUUID(),
		kernel.ServiceTypeFreight, decimal.NewFromInt(60))
	require.NoError(t, err)

	factory := new(MockMarginUoWFactory)

	h := commands.NewSetMarginRuleCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create")
}

func TestSetMarginRuleCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockMarginUoWFactory)

	h := commands.NewSetMarginRuleCommandHandler(factory)
	err := h.Handle(ctx, commands.SetMarginRuleCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSetMarginRuleCommandIsNotConstructed)
}
