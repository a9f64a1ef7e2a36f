package train

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/sjwhitworth/golearn/base"
)

// splitRows shuffles 0..n-1 with seed and returns sorted train and test row
// indexes. The test share is rounded up and both sides keep at least one row.
func splitRows(n int, testSize float64, seed int64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("need at least 2 rows to split, got %d", n)
	}
	testN := int(math.Ceil(testSize * float64(n)))
	if testN < 1 {
		testN = 1
	}
	if testN > n-1 {
		testN = n - 1
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test = append([]int(nil), perm[:testN]...)
	train = append([]int(nil), perm[testN:]...)
	sort.Ints(test)
	sort.Ints(train)
	return train, test, nil
}

// view exposes rows of src as a grid of their own.
func view(src base.FixedDataGrid, rows []int) base.FixedDataGrid {
	m := make(map[int]int, len(rows))
	for i, r := range rows {
		m[i] = r
	}
	return base.NewInstancesViewFromRows(src, m)
}
