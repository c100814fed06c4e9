// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package datatable_test

import (
	"testing"

	"github.com/featurebasedb/datatable"
	"github.com/featurebasedb/datatable/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	s := datatable.NewShape(4, 3)
	assert.Equal(t, 4, s.Rows())
	assert.Equal(t, 3, s.Cols())
	assert.Equal(t, "(4, 3)", s.String())

	rows, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 4, rows)
	cols, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, 3, cols)

	_, err = s.At(2)
	assert.True(t, errors.Is(err, datatable.ErrInvalidIndex))

	t.Run("Clamp", func(t *testing.T) {
		s := datatable.NewShape(-1, -5)
		assert.Equal(t, 0, s.Rows())
		assert.Equal(t, 0, s.Cols())
		s.SetRows(7)
		s.SetCols(-2)
		assert.Equal(t, "(7, 0)", s.String())
	})
}
