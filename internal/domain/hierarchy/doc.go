// Package hierarchy contiene el motor de jerarquía de categorías: resolución de
// descendientes y construcción del árbol de lectura.
//
// Las categorías se guardan planas (cada una con el id de su padre). Todo el
// recorrido es por niveles: una consulta FindChildren por nivel del árbol, nunca
// una por nodo. Los ids ya visitados se descartan, de modo que datos corruptos
// con ciclos no dejan el recorrido en un bucle infinito.
package hierarchy
