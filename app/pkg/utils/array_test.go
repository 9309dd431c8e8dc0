package utils

import (
	"reflect"
	"testing"
)

func TestMissingIndices(t *testing.T) {
	result := MissingIndices(5, []int{1, 2, 4})
	expected := []int{3, 5}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, but got %v", expected, result)
	}
}

func TestMissingIndicesComplete(t *testing.T) {
	if result := MissingIndices(3, []int{3, 1, 2}); result != nil {
		t.Errorf("Expected no missing indices, but got %v", result)
	}
}

func TestMissingIndicesEmpty(t *testing.T) {
	result := MissingIndices(3, nil)
	expected := []int{1, 2, 3}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, but got %v", expected, result)
	}
}
