package dataset

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarbey/nfgrid/internal/rules"
)

func TestReadCSV_LabelInLastColumn(t *testing.T) {
	in := "5.1,3.5,setosa\n4.9,3.0,setosa\n6.3,3.3,virginica\n"

	d, err := ReadCSV(strings.NewReader(in), CSVOptions{LabelColumn: -1})
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, [][]float64{{5.1, 3.5}, {4.9, 3.0}, {6.3, 3.3}}, d.X)
	assert.Equal(t, []rules.Label{"setosa", "setosa", "virginica"}, d.Y)
}

func TestReadCSV_HeaderAndExplicitLabelColumn(t *testing.T) {
	in := "class,a,b\nx,1,2\ny,3,4\n"

	d, err := ReadCSV(strings.NewReader(in), CSVOptions{Header: true, LabelColumn: 0})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, d.X)
	assert.Equal(t, []rules.Label{"x", "y"}, d.Y)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"empty input":        "",
		"non-numeric column": "1,abc,x\n",
		"single column":      "1\n2\n",
	}
	for name, in := range cases {
		_, err := ReadCSV(strings.NewReader(in), CSVOptions{LabelColumn: -1})
		assert.Error(t, err, name)
	}
}

func TestShuffle_KeepsRowsAndLabelsInLockstep(t *testing.T) {
	d := &Dataset{
		X: [][]float64{{0}, {1}, {2}, {3}, {4}, {5}},
		Y: []rules.Label{"0", "1", "2", "3", "4", "5"},
	}

	d.Shuffle(rand.New(rand.NewPCG(7, 7)))

	require.NoError(t, d.Validate())
	for i, row := range d.X {
		// Each label spells its row's single value.
		assert.Equal(t, rules.Label(strconv.Itoa(int(row[0]))), d.Y[i])
	}
}

func TestSplit_Fractions(t *testing.T) {
	d := &Dataset{
		X: [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}},
		Y: []rules.Label{"a", "a", "a", "a", "a", "b", "b", "b", "b", "b"},
	}

	train, test, err := d.Split(0.7, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, test.Len())

	_, _, err = d.Split(0, nil)
	assert.Error(t, err)
	_, _, err = d.Split(1.5, nil)
	assert.Error(t, err)
}

func TestValidate_RaggedMatrix(t *testing.T) {
	d := &Dataset{X: [][]float64{{1, 2}, {3}}, Y: []rules.Label{"a", "b"}}
	assert.Error(t, d.Validate())
}
