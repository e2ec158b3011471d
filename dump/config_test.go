package dump

import (
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	d, err := New(Config{}, make(Buffer, 10))
	require.Nil(t, err)
	config := d.Config()
	require.Equal(t, DefaultRowSize, config.RowSize)
	require.Equal(t, Byte, config.Granularity)
	require.Equal(t, int64(0), config.BaseAddress)
	require.Equal(t, int64(0), config.StartOffset)
}

func TestConfigEndOffsetClamped(t *testing.T) {
	d, err := New(Config{RowSize: 16, EndOffset: 1000}, make(Buffer, 10))
	require.Nil(t, err)
	require.Equal(t, int64(1), d.RowCount())
}

func TestConfigErrors(t *testing.T) {
	source := make(Buffer, 10)
	var testData = map[string]Config{
		"negative row size":          {RowSize: -1},
		"invalid granularity":        {Granularity: 3},
		"row size not cell multiple": {RowSize: 6, Granularity: Word},
		"negative start offset":      {StartOffset: -1},
		"start beyond length":        {StartOffset: 11},
		"end before start":           {StartOffset: 8, EndOffset: 4},
	}
	for name, config := range testData {
		_, err := New(config, source)
		require.NotNil(t, err, name)
		var configErr *ConfigError
		require.True(t, errors.As(err, &configErr), name)
		log.Println(fmt.Sprintf("%s: %v", name, err))
	}
}

func TestConfigStartAtLength(t *testing.T) {
	// a start offset exactly at the source length is a valid,
	// zero-row dump
	d, err := New(Config{StartOffset: 10}, make(Buffer, 10))
	require.Nil(t, err)
	require.Equal(t, int64(0), d.RowCount())
}
